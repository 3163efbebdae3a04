package schema

import (
	"fmt"
	"strings"
)

// ViolationKind names the category of a single validation failure.
type ViolationKind string

const (
	MissingConfig ViolationKind = "missingConfig"
	Required      ViolationKind = "required"
	NotType       ViolationKind = "notType"
	TooShort      ViolationKind = "tooShort"
	TooLong       ViolationKind = "tooLong"
	NotOneOf      ViolationKind = "notOneOf"
	InvalidFormat ViolationKind = "invalidFormat"
)

// MessageContext carries the values substituted into a message template.
type MessageContext struct {
	Label  string
	Type   ValueKind
	Min    int
	Max    int
	Values []string
	Format Format
}

// Messages are Finnish; the form is only offered in Finnish.
var templates = map[ViolationKind]func(MessageContext) string{
	MissingConfig: func(c MessageContext) string {
		return fmt.Sprintf("Puuttuva asetus: %s", c.Label)
	},
	Required: func(c MessageContext) string {
		return fmt.Sprintf("%s on pakollinen kenttä", c.Label)
	},
	NotType: func(c MessageContext) string {
		return fmt.Sprintf("%s pitää olla %s", c.Label, typeName(c.Type))
	},
	TooShort: func(c MessageContext) string {
		return fmt.Sprintf("%s pitää olla vähintään %d merkkiä pitkä", c.Label, c.Min)
	},
	TooLong: func(c MessageContext) string {
		return fmt.Sprintf("%s saa olla enintään %d merkkiä pitkä", c.Label, c.Max)
	},
	NotOneOf: func(c MessageContext) string {
		return fmt.Sprintf("%s pitää olla jokin seuraavista: \"%s\"", c.Label, strings.Join(c.Values, ", "))
	},
	InvalidFormat: func(c MessageContext) string {
		return fmt.Sprintf("%s pitää olla %s", c.Label, formatName(c.Format))
	},
}

// Render produces the localized message for a violation kind.
func Render(kind ViolationKind, c MessageContext) string {
	if render, ok := templates[kind]; ok {
		return render(c)
	}
	return fmt.Sprintf("%s on virheellinen", c.Label)
}

func typeName(kind ValueKind) string {
	switch kind {
	case Text:
		return "tekstiä"
	case Boolean:
		return "tosi/epätosi"
	case Object:
		return "objekti"
	default:
		return string(kind)
	}
}

func formatName(format Format) string {
	switch format {
	case FormatEmail:
		return "sähköpostimuotoa"
	default:
		return "oikeaa muotoa"
	}
}
