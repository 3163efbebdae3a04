package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"joke-sheet/internal/models"
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string        `json:"field"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// Outcome holds either a normalized submission or the violations found.
type Outcome struct {
	Submission *models.Submission
	Violations []Violation
}

// Valid reports whether the payload passed every rule.
func (o Outcome) Valid() bool {
	return len(o.Violations) == 0 && o.Submission != nil
}

// Messages returns the rendered violation messages in report order.
func (o Outcome) Messages() []string {
	messages := make([]string, 0, len(o.Violations))
	for _, v := range o.Violations {
		messages = append(messages, v.Message)
	}
	return messages
}

// Validator checks payloads against the field rule catalog. It is safe for
// concurrent use.
type Validator struct {
	rules   []Rule
	formats *validator.Validate
}

// NewValidator builds a validator over the default catalog.
func NewValidator() *Validator {
	return NewValidatorWithRules(Rules())
}

// NewValidatorWithRules builds a validator over a custom rule set.
func NewValidatorWithRules(rules []Rule) *Validator {
	return &Validator{
		rules:   rules,
		formats: validator.New(),
	}
}

// ValidateJSON decodes a JSON body and validates it. A body that is not a
// single JSON object yields one notType violation on the root path.
func (v *Validator) ValidateJSON(body []byte) Outcome {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return rootViolation(NotType)
	}
	if _, err := dec.Token(); err != io.EOF {
		return rootViolation(NotType)
	}
	return v.Validate(payload)
}

// Validate runs every rule against the payload and collects every violation.
// Keys without a rule are ignored. The payload is never modified.
func (v *Validator) Validate(payload map[string]any) Outcome {
	var violations []Violation
	normalized := make(map[string]any, len(v.rules))

	for _, rule := range v.rules {
		value, violation := v.check(rule, payload)
		if violation != nil {
			violations = append(violations, *violation)
			continue
		}
		normalized[rule.Field] = value
	}
	if len(violations) > 0 {
		return Outcome{Violations: violations}
	}

	var submission models.Submission
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &submission,
	})
	if err == nil {
		err = dec.Decode(normalized)
	}
	if err != nil {
		return rootViolation(NotType)
	}
	return Outcome{Submission: &submission}
}

// check evaluates one field: type, then presence, then constraints. The first
// failure ends the evaluation of that field only.
func (v *Validator) check(rule Rule, payload map[string]any) (any, *Violation) {
	fail := func(kind ViolationKind) (any, *Violation) {
		return nil, &Violation{Field: rule.Field, Kind: kind, Message: rule.message(kind)}
	}

	raw, present := payload[rule.Field]
	if present && raw != nil {
		coerced, ok := coerce(rule.Kind, raw)
		if !ok {
			return fail(NotType)
		}
		raw = coerced
	}

	if text, ok := raw.(string); ok {
		raw = strings.TrimSpace(text)
	}
	if raw == nil || raw == "" {
		if rule.Required {
			return fail(Required)
		}
		return zeroValue(rule.Kind), nil
	}

	text, ok := raw.(string)
	if !ok {
		return raw, nil
	}
	length := utf8.RuneCountInString(text)
	switch {
	case rule.MinLen > 0 && length < rule.MinLen:
		return fail(TooShort)
	case rule.MaxLen > 0 && length > rule.MaxLen:
		return fail(TooLong)
	case len(rule.OneOf) > 0 && !slices.Contains(rule.OneOf, text):
		return fail(NotOneOf)
	case rule.Format == FormatEmail && v.formats.Var(text, "email") != nil:
		return fail(InvalidFormat)
	}
	return text, nil
}

// coerce converts loosely typed JSON values to the declared kind: numbers and
// booleans become text, and "true"/"1"/"false"/"0" become booleans.
func coerce(kind ValueKind, raw any) (any, bool) {
	switch kind {
	case Text:
		switch value := raw.(type) {
		case string:
			return value, true
		case json.Number:
			return value.String(), true
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(value), true
		}
	case Boolean:
		switch value := raw.(type) {
		case bool:
			return value, true
		case string:
			switch strings.ToLower(value) {
			case "true", "1":
				return true, true
			case "false", "0":
				return false, true
			}
		case json.Number:
			if f, err := value.Float64(); err == nil {
				return numberToBool(f)
			}
		case float64:
			return numberToBool(value)
		}
	}
	return nil, false
}

func numberToBool(f float64) (any, bool) {
	switch {
	case f == 1:
		return true, true
	case f == 0:
		return false, true
	}
	return nil, false
}

func zeroValue(kind ValueKind) any {
	if kind == Boolean {
		return false
	}
	return ""
}

func rootViolation(kind ViolationKind) Outcome {
	return Outcome{Violations: []Violation{{
		Field:   "",
		Kind:    kind,
		Message: Render(kind, MessageContext{Label: rootLabel, Type: Object}),
	}}}
}
