package constant

// Confidence below which the bot tries to parse the question as a numeric
// expression instead of trusting the engine's top answer.
const NumericalExpressionThreshold = 0.80

// Confidence assigned to a synthetic numeric answer spliced into history.
const NumericalAnswerConfidence = 0.80

// How many candidate answers the bot requests per question; the extras feed
// the .next pagination.
const BotAnswerItems = 5

const BotHelpMessage = `Hi, I am *Answerbot*, I answer questions from your documents and saved replies and improve as you teach me.
Here are my commands:

    *.add* _question_ | _answer_ - Create a new saved reply.
    *.next* - Show the next possible answer to the last question.
    *.why* - Explain why the last answer was given.
    *.help* - Display this message.

You can also:

    *Ask* me to calculate, for example ` + "`what is 3+2?`" + `.

For more options log in to your account.`

const (
	ErrorHelpMessage    = "\n*Answerbot* error, type `.help` for more options."
	EchoToggledText     = "Echo mode toggled"
	AddReplyUsageText   = "Sorry, I didn't understand that. The usage for `.add` is: .add question | answer"
	RanOutOfAnswersText = "I'm afraid I've run out of answers to that question."
	AskQuestionFirst    = "Please ask a question first."
	DontKnowText        = "Sorry! I don't know the answer to that."
)
