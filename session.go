package scicalc

import "math/big"

// Entry is one successful evaluation in a session's history.
type Entry struct {
	// Text is the text as the user entered it.
	Text string
	// Value is the result.
	Value *big.Float
}

// Session holds the state a calculator keeps between evaluations: the angle
// mode, the last answer, and the history of successful evaluations. It is not
// safe to use a Session concurrently.
type Session struct {
	opts    []EnvOption
	mode    Mode
	ans     *big.Float
	history []Entry
}

// NewSession creates a session. opts apply to every evaluation; an Angle
// option sets the initial mode, and an Ans option the initial last answer.
func NewSession(opts ...EnvOption) *Session {
	env := NewEnv(opts...)
	return &Session{
		opts: opts,
		mode: env.Mode(),
		ans:  env.LastAns(),
	}
}

// Eval evaluates calculator text with the session's mode and last answer. On
// success, the value becomes the last answer and is appended to the history.
// On failure, the session is unchanged.
func (s *Session) Eval(text string) Result {
	opts := make([]EnvOption, 0, len(s.opts)+2)
	opts = append(opts, s.opts...)
	opts = append(opts, Angle(s.mode), Ans(s.ans))
	r := evaluate(text, opts...)
	if !r.OK() {
		return r
	}
	s.ans = new(big.Float).Copy(r.Value)
	s.history = append(s.history, Entry{Text: text, Value: new(big.Float).Copy(r.Value)})
	return r
}

// SetMode changes the angle mode for future evaluations.
func (s *Session) SetMode(m Mode) {
	s.mode = m
}

// Mode returns the current angle mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Ans returns a copy of the last answer, or nil if there is none.
func (s *Session) Ans() *big.Float {
	if s.ans == nil {
		return nil
	}
	return new(big.Float).Copy(s.ans)
}

// History returns a copy of the successful evaluations, oldest first.
func (s *Session) History() []Entry {
	h := make([]Entry, len(s.history))
	for i, e := range s.history {
		h[i] = Entry{Text: e.Text, Value: new(big.Float).Copy(e.Value)}
	}
	return h
}

// Reset clears the last answer and the history. The mode is unchanged.
func (s *Session) Reset() {
	s.ans = nil
	s.history = nil
}
