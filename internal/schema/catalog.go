package schema

// ValueKind is the declared type of a field value.
type ValueKind string

const (
	Text    ValueKind = "string"
	Boolean ValueKind = "boolean"
	Object  ValueKind = "object"
)

// Format is an optional textual format constraint.
type Format string

const (
	FormatNone  Format = ""
	FormatEmail Format = "email"
)

// Rule declares the constraints of a single form field.
// A zero MinLen or MaxLen disables that bound; an empty OneOf allows any value.
type Rule struct {
	Field    string
	Label    string
	Kind     ValueKind
	Required bool
	MinLen   int
	MaxLen   int
	OneOf    []string
	Format   Format
}

func (r Rule) message(kind ViolationKind) string {
	return Render(kind, MessageContext{
		Label:  r.Label,
		Type:   r.Kind,
		Min:    r.MinLen,
		Max:    r.MaxLen,
		Values: r.OneOf,
		Format: r.Format,
	})
}

// rootLabel names the payload itself in messages about its shape.
const rootLabel = "Lomake"

var guilds = []string{
	"Nucleus",
	"Digit",
	"Machina",
	"Adamas",
	"Muu",
}

// Field order is the order violations are reported in.
var catalog = []Rule{
	{
		Field:    "joke",
		Label:    "Vitsi",
		Kind:     Text,
		Required: true,
		MinLen:   1,
		MaxLen:   5000,
	},
	{
		Field:  "email",
		Label:  "Sähköpostiosoite",
		Kind:   Text,
		MinLen: 3,
		MaxLen: 254,
		Format: FormatEmail,
	},
	{
		Field:    "guild",
		Label:    "Kilta",
		Kind:     Text,
		Required: true,
		OneOf:    guilds,
	},
	{
		Field:    "isFuksi",
		Label:    "Olen fuksi",
		Kind:     Boolean,
		Required: true,
	},
}

// Rules returns a copy of the field rule catalog.
func Rules() []Rule {
	rules := make([]Rule, len(catalog))
	for i, r := range catalog {
		r.OneOf = append([]string(nil), r.OneOf...)
		rules[i] = r
	}
	return rules
}

// Guilds returns the accepted guild names.
func Guilds() []string {
	return append([]string(nil), guilds...)
}
