package middleware

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/constant"
	"qa-assistant-be/internal/pkg/apierr"
)

const argsKey = "args"

// DefaultNumberOfItems is the page size applied when a list endpoint is
// called without an explicit numberofitems parameter.
const DefaultNumberOfItems = 30

// Credentials may only travel in the query string so they never end up
// inside logged request bodies, except on routes that receive third party
// payloads we do not control.
var getOnlyParams = map[string]struct{}{
	"admintoken": {},
	"token":      {},
}

// Callback URLs may only travel in the body so they cannot be injected by
// link sharing.
var postOnlyParams = map[string]struct{}{
	"successcallback": {},
	"errorcallback":   {},
}

// Route prefixes where external services post payloads containing fields
// that collide with the placement rules above.
var getOnlyExemptPrefixes = []string{
	constant.URLBase + "/email/",
	"/hangouts/",
}

// JSON bodies carrying one of these type markers come from third party
// webhooks and skip the placement checks entirely.
var trustedWebhookTypes = map[string]struct{}{
	"event_callback":       {},
	"url_verification":     {},
	"payment_notification": {},
}

// Params flattens body and query parameters into a single lower-cased
// string map stored in the request locals, enforcing the placement rules
// for credential and callback parameters. Query parameters win over body
// parameters with the same name.
func Params() fiber.Handler {
	return func(c *fiber.Ctx) error {
		args := map[string]string{}

		if err := collectBodyParams(c, args); err != nil {
			return err
		}

		var queryErr error
		c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
			if queryErr != nil {
				return
			}
			name := strings.ToLower(string(key))
			if _, ok := postOnlyParams[name]; ok {
				queryErr = apierr.CannotBeGetParameter(name)
				return
			}
			args[name] = string(value)
		})
		if queryErr != nil {
			return queryErr
		}

		c.Locals(argsKey, args)
		return c.Next()
	}
}

func collectBodyParams(c *fiber.Ctx, args map[string]string) error {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		var formErr error
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			if formErr != nil {
				return
			}
			name := strings.ToLower(string(key))
			if err := checkGetOnly(c, name); err != nil {
				formErr = err
				return
			}
			args[name] = string(value)
		})
		return formErr

	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil
		}
		for key, values := range form.Value {
			if len(values) == 0 {
				continue
			}
			name := strings.ToLower(key)
			if err := checkGetOnly(c, name); err != nil {
				return err
			}
			args[name] = values[0]
		}
		return nil

	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		body := c.Body()
		if len(strings.TrimSpace(string(body))) == 0 {
			return nil
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(body, &fields); err != nil {
			return apierr.ErrInvalidJSON
		}
		trusted := false
		if t, ok := fields["type"].(string); ok {
			_, trusted = trustedWebhookTypes[t]
		}
		for key, value := range fields {
			name := strings.ToLower(key)
			if !trusted {
				if err := checkGetOnly(c, name); err != nil {
					return err
				}
			}
			args[name] = stringifyParam(value)
		}
		return nil
	}

	return nil
}

func checkGetOnly(c *fiber.Ctx, name string) error {
	if _, ok := getOnlyParams[name]; !ok {
		return nil
	}
	path := c.Path()
	for _, prefix := range getOnlyExemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return nil
		}
	}
	return apierr.CannotBePostParameter(name)
}

// stringifyParam normalizes a decoded JSON value to the string form the
// parameter helpers expect. Nested objects and arrays stay JSON encoded so
// handlers can unmarshal them again.
func stringifyParam(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

// Args returns the normalized parameter map for the request. It is always
// present once the Params middleware has run.
func Args(c *fiber.Ctx) map[string]string {
	if args, ok := c.Locals(argsKey).(map[string]string); ok {
		return args
	}
	return map[string]string{}
}

// RequiredParam returns a parameter value or the canonical missing
// parameter error.
func RequiredParam(c *fiber.Ctx, name string) (string, error) {
	value, ok := Args(c)[name]
	if !ok || value == "" {
		return "", apierr.MissingParameter(name)
	}
	return value, nil
}

// OptionalParam returns a parameter value or the given default.
func OptionalParam(c *fiber.Ctx, name, fallback string) string {
	if value, ok := Args(c)[name]; ok && value != "" {
		return value
	}
	return fallback
}

// ListParams parses the shared paging parameters of list endpoints.
func ListParams(c *fiber.Ctx) (numberOfItems, offset int, err error) {
	numberOfItems, err = intParam(c, "numberofitems", DefaultNumberOfItems)
	if err != nil {
		return 0, 0, err
	}
	offset, err = intParam(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if numberOfItems < 0 {
		numberOfItems = 0
	}
	if offset < 0 {
		offset = 0
	}
	return numberOfItems, offset, nil
}

// IntParam parses an integer parameter, falling back when absent.
func IntParam(c *fiber.Ctx, name string, fallback int) (int, error) {
	return intParam(c, name, fallback)
}

func intParam(c *fiber.Ctx, name string, fallback int) (int, error) {
	raw, ok := Args(c)[name]
	if !ok || raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.ErrInvalidUsage
	}
	return value, nil
}

// SplitListParam parses a comma separated list parameter, dropping empty
// entries. Returns nil when the parameter is absent.
func SplitListParam(c *fiber.Ctx, name string) []string {
	raw, ok := Args(c)[name]
	if !ok || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
