package gate

import "crypto/subtle"

// CodeLength is the number of digits in the passcode.
const CodeLength = 4

// Outcome reports the keypad state after a key press.
type Outcome int

const (
	Pending Outcome = iota
	Granted
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "pending"
	}
}

// Keypad collects digits one at a time. After the fourth digit it grants
// access on an exact match and otherwise clears the input. Once granted it
// ignores further input.
type Keypad struct {
	code    string
	input   []byte
	granted bool
}

func NewKeypad(code string) *Keypad {
	return &Keypad{code: code}
}

// Press appends a digit. Non-digit keys are ignored.
func (k *Keypad) Press(digit rune) Outcome {
	if k.granted {
		return Granted
	}
	if digit < '0' || digit > '9' {
		return Pending
	}
	k.input = append(k.input, byte(digit))
	if len(k.input) < CodeLength {
		return Pending
	}

	entered := string(k.input)
	k.input = k.input[:0]
	if matches(entered, k.code) {
		k.granted = true
		return Granted
	}
	return Denied
}

// Delete removes the last entered digit.
func (k *Keypad) Delete() {
	if k.granted || len(k.input) == 0 {
		return
	}
	k.input = k.input[:len(k.input)-1]
}

// Entered is the number of digits currently typed.
func (k *Keypad) Entered() int {
	return len(k.input)
}

func (k *Keypad) Granted() bool {
	return k.granted
}

func matches(entered, code string) bool {
	return len(code) == CodeLength && subtle.ConstantTimeCompare([]byte(entered), []byte(code)) == 1
}
