package apierr

// Fixed user-facing messages. These are part of the API contract: clients
// match on them, so the wording must stay stable.
const (
	NotLoggedText          = "You need to be logged in to perform this action."
	AdminOnlyText          = "This action requires a super admin token."
	InvalidTokenText       = "Invalid token '%s', it does not belong to any user."
	MissingParamText       = "Required parameter '%s' is missing."
	CannotBePostParamText  = "Parameter '%s' must be supplied in the query string, not in the request body."
	CannotBeGetParamText   = "Parameter '%s' must be supplied in the request body, not in the query string."
	InvalidCredentialsText = "Invalid username or password."
	ValidCredentialsText   = "Welcome back!"
	LoggedOutText          = "You have been logged out."

	NotFoundText     = "This endpoint does not exist."
	TimeoutText      = "The request timed out, please try again."
	ErrorText        = "Something went wrong on our end, sorry! The error has been logged."
	InvalidJSONText  = "The request body is not valid JSON."
	InvalidUsageText = "Invalid usage of the API, please check your request."

	InvalidSourceTypeText      = "Parameter 'sourceType' must be one of: document, saved_reply, all."
	InvalidSpeedOrAccuracyText = "Invalid speedOrAccuracy '%s', must be one of: speed, accuracy, balanced, total."
	InvalidThresholdText       = "Invalid threshold, must be one of: verylow, low, medium, high."
	InvalidPlanText            = "Invalid plan '%s', available plans are: %s."
	InvalidTermsText           = "Invalid value '%s' for termsAgreed, must be 'true' or 'false'."
	MaxSizeInlineTextText      = "Inline text is limited to %d characters, got %d."
	InboxDoesNotExistText      = "Inbox item '%s' does not exist."
	UserExistsText             = "A user with id '%s' already exists."
	InvalidForwardTokenText    = "Invalid or expired email verification token."
	PaymentNotEnabledText      = "Payments are not enabled on this deployment."

	AnnotationMissingParamsText = "An annotation requires both 'startOffset' and 'endOffset' parameters."

	DocumentDoesNotExistText   = "Document '%s' does not exist."
	SavedReplyDoesNotExistText = "Saved reply '%s' does not exist."
	AnnotationDoesNotExistText = "Annotation '%s' does not exist."
	ParaphraseDoesNotExistText = "Paraphrase question '%s' does not exist."
	AnswerDoesNotExistText     = "Answer '%s' does not exist."
)
