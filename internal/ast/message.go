package ast

// AgentID identifies a message endpoint. It is a bare identifier token on
// the wire (letter then alnum/_/./-).
type AgentID string

// Header carries the routing envelope of a Message. Every field but
// Correlation and TTL is required for a well-formed message.
type Header struct {
	Version     uint32
	MessageID   string
	Source      AgentID
	Destination AgentID
	Timestamp   int64
	Correlation *string
	TTL         *uint32
}

// Equal compares two headers field-by-field, including the optional ones.
func (h Header) Equal(o Header) bool {
	if h.Version != o.Version || h.MessageID != o.MessageID ||
		h.Source != o.Source || h.Destination != o.Destination ||
		h.Timestamp != o.Timestamp {
		return false
	}
	if !optStrEqual(h.Correlation, o.Correlation) {
		return false
	}
	if !optU32Equal(h.TTL, o.TTL) {
		return false
	}
	return true
}

func optStrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func optU32Equal(a, b *uint32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// HeaderError reports a malformed or incomplete header.
type HeaderError struct {
	Field   string
	Message string
}

func (e HeaderError) Error() string {
	return "invalid header field " + e.Field + ": " + e.Message
}

// Validate enforces the required-field invariant from the data model: every
// field but Correlation and TTL must be set. Timestamp has no zero value
// that reliably means "unset" — the Unix epoch is a legitimate timestamp
// — so its presence isn't checked here by value. The grammar parser and
// the CorrelationEngine header builders always stamp one; the knowledge
// engine's auto-fold archive messages leave it at 0.
func (h Header) Validate() error {
	if h.MessageID == "" {
		return HeaderError{Field: "message_id", Message: "required"}
	}
	if h.Source == "" {
		return HeaderError{Field: "source", Message: "required"}
	}
	if h.Destination == "" {
		return HeaderError{Field: "destination", Message: "required"}
	}
	return nil
}

// Message is immutable once constructed: one Header plus an ordered
// sequence of Statement.
type Message struct {
	Header     Header
	Statements []Statement
}

// Validate checks the header and recursively does nothing further — the
// statement variants are structurally typed and cannot be malformed once
// constructed by the parser or by hand through exported constructors.
func (m Message) Validate() error {
	return m.Header.Validate()
}

// Equal compares two messages structurally: equal headers and an
// element-wise equal, same-length, same-order statement sequence.
func (m Message) Equal(o Message) bool {
	if !m.Header.Equal(o.Header) {
		return false
	}
	if len(m.Statements) != len(o.Statements) {
		return false
	}
	for i := range m.Statements {
		if !StatementEqual(m.Statements[i], o.Statements[i]) {
			return false
		}
	}
	return true
}
