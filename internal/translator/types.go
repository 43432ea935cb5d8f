package translator

import (
	"context"
	"errors"
	"fmt"

	"github.com/valpere/tradcompare/internal/language"
)

// UnsupportedMessage is what an unsupported result renders as.
const UnsupportedMessage = "Language not supported"

var ErrInvalidRequest = errors.New("invalid translation request")

type Request struct {
	Text   string            `json:"text"`
	Source language.Language `json:"source"`
	Target language.Language `json:"target"`
}

// Validate checks that both languages are registered and differ.
func (r Request) Validate() error {
	if !r.Source.Valid() {
		return fmt.Errorf("%w: source %s", ErrInvalidRequest, r.Source)
	}
	if !r.Target.Valid() {
		return fmt.Errorf("%w: target %s", ErrInvalidRequest, r.Target)
	}
	if r.Source == r.Target {
		return fmt.Errorf("%w: source and target are both %s", ErrInvalidRequest, r.Source)
	}
	return nil
}

type Status int

const (
	StatusTranslated Status = iota
	StatusUnsupported
)

func (s Status) String() string {
	switch s {
	case StatusTranslated:
		return "translated"
	case StatusUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type Result struct {
	Status Status
	Text   string
}

func Translated(text string) Result {
	return Result{Status: StatusTranslated, Text: text}
}

func Unsupported() Result {
	return Result{Status: StatusUnsupported}
}

func (r Result) Supported() bool {
	return r.Status == StatusTranslated
}

func (r Result) String() string {
	if !r.Supported() {
		return UnsupportedMessage
	}
	return r.Text
}

// Backend is a remote translation service taking part in a comparison.
//
// Translate returns Unsupported with a nil error, and without touching the
// network, when either language of the request has no code in the backend.
// Remote failures are returned as errors matching ErrInvocation.
type Backend interface {
	Name() string
	Translate(ctx context.Context, req Request) (Result, error)
	SupportedLanguages() []language.Language
}

// CodeReporter is implemented by backends that can show their native code
// for a language.
type CodeReporter interface {
	LanguageCode(l language.Language) (string, bool)
}

// resolvePair looks both languages up in codes.
func resolvePair(codes *language.CodeMap, req Request) (src, tgt string, ok bool) {
	src, srcOK := codes.Code(req.Source)
	tgt, tgtOK := codes.Code(req.Target)
	return src, tgt, srcOK && tgtOK
}
