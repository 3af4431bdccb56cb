package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is a classified failure reason from the closed error-kind taxonomy.
// A Kind is a tag plus, for the few kinds that carry one, a free-form
// message. Kinds are comparable: two kinds are equal when both the tag and
// the message are equal.
//
// The zero Kind is not a member of the taxonomy; use [Tag.Kind],
// [Tag.WithMessage], or one of the named payload constructors.
type Kind struct {
	tag     Tag
	message string
}

var (
	tagIndex = make(map[Tag]int, len(registry))
	tagNames = make([]string, len(registry))
)

func init() {
	for i, row := range registry {
		if _, dup := tagIndex[row.tag]; dup {
			panic(fmt.Sprintf("errors: duplicate error kind tag %q", row.tag))
		}
		tagIndex[row.tag] = i
		tagNames[i] = camelName(row.tag)
	}
}

// Kind returns the kind for a tag that carries no message. For tags that
// carry a message, the returned kind has an empty message.
func (t Tag) Kind() Kind {
	return Kind{tag: t}
}

// WithMessage returns the kind for a tag that carries a message. The
// message is dropped for tags that do not carry one, so the result always
// serializes according to the tag's declared shape.
func (t Tag) WithMessage(message string) Kind {
	if !t.HasMessage() {
		return Kind{tag: t}
	}
	return Kind{tag: t, message: message}
}

// HasMessage reports whether kinds with this tag carry a message.
func (t Tag) HasMessage() bool {
	i, ok := tagIndex[t]
	return ok && registry[i].payload
}

// Valid reports whether t is a declared tag.
func (t Tag) Valid() bool {
	_, ok := tagIndex[t]
	return ok
}

// String returns the tag's wire name.
func (t Tag) String() string {
	return string(t)
}

// ParseTag returns the declared tag with the given wire name.
func ParseTag(s string) (Tag, bool) {
	t := Tag(s)
	return t, t.Valid()
}

// RegistrationDenied is returned when an admin rejects a registration
// application; reason is the admin's free-form explanation.
func RegistrationDenied(reason string) Kind {
	return TagRegistrationDenied.WithMessage(reason)
}

// PictrsResponseError carries the error text returned by the image host.
func PictrsResponseError(message string) Kind {
	return TagPictrsResponseError.WithMessage(message)
}

// PictrsPurgeResponseError carries the error text returned by the image host
// when purging an image.
func PictrsPurgeResponseError(message string) Kind {
	return TagPictrsPurgeResponseError.WithMessage(message)
}

// Tag returns the kind's wire tag.
func (k Kind) Tag() Tag {
	return k.tag
}

// Message returns the kind's payload. It is empty for kinds without one.
func (k Kind) Message() string {
	return k.message
}

// IsZero reports whether k is the zero Kind.
func (k Kind) IsZero() bool {
	return k.tag == ""
}

// Name returns the CamelCase variant name of the kind, e.g.
// "RegistrationDenied" for registration_denied.
func (k Kind) Name() string {
	if i, ok := tagIndex[k.tag]; ok {
		return tagNames[i]
	}
	return camelName(k.tag)
}

// String renders the kind for operator-facing text. It is never shown to
// API clients, who receive the tag and translate it themselves.
func (k Kind) String() string {
	if k.message != "" {
		return k.Name() + ": " + k.message
	}
	return k.Name()
}

// wireKind is the JSON shape of a Kind. Field order is part of the wire
// contract.
type wireKind struct {
	Error   Tag     `json:"error"`
	Message *string `json:"message,omitempty"`
}

// MarshalJSON encodes the kind as {"error":"<tag>"} or, for kinds that carry
// a message, {"error":"<tag>","message":"<message>"}. HTML characters are
// not escaped. Kinds whose tag is not declared, including the zero Kind,
// fail to encode.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.tag.Valid() {
		return nil, fmt.Errorf("errors: unknown error kind %q", k.tag)
	}
	w := wireKind{Error: k.tag}
	if k.tag.HasMessage() {
		msg := k.message
		w.Message = &msg
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes the wire form produced by [Kind.MarshalJSON]. It
// rejects unknown tags and a message on kinds that do not carry one.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var w wireKind
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Error.Valid() {
		return fmt.Errorf("errors: unknown error kind %q", w.Error)
	}
	if w.Message != nil && !w.Error.HasMessage() {
		return fmt.Errorf("errors: error kind %q does not carry a message", w.Error)
	}
	*k = Kind{tag: w.Error}
	if w.Message != nil {
		k.message = *w.Message
	}
	return nil
}

// Kinds returns one representative kind per declared tag, in declaration
// order. Kinds that carry a message are returned with an empty message.
// The result is a fresh slice owned by the caller.
func Kinds() []Kind {
	kinds := make([]Kind, len(registry))
	for i, row := range registry {
		kinds[i] = Kind{tag: row.tag}
	}
	return kinds
}

// Tags returns every declared tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, len(registry))
	for i, row := range registry {
		tags[i] = row.tag
	}
	return tags
}

func camelName(t Tag) string {
	var b strings.Builder
	b.Grow(len(t))
	for _, part := range strings.Split(string(t), "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
