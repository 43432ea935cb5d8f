package translator

import (
	"context"
	"fmt"

	"github.com/valpere/tradcompare/internal/language"
)

const DefaultOpusMTEndpoint = "helsinki-nlp-opus-mt-itc-itc"

// opusMTCodes are the target-token tags of the multi-target opus-mt model.
var opusMTCodes = language.CodeMap{
	language.Spanish:    "spa",
	language.Italian:    "ita",
	language.Portuguese: "por",
	language.Catalan:    "cat",
	language.Galician:   "glg",
}

// OpusMTBackend translates through a Helsinki-NLP opus-mt endpoint. The model
// picks the output language from a >>code<< prefix on the input.
type OpusMTBackend struct {
	endpoint *Endpoint
	codes    language.CodeMap
}

func NewOpusMTBackend(endpoint *Endpoint) *OpusMTBackend {
	return &OpusMTBackend{endpoint: endpoint, codes: opusMTCodes}
}

func (b *OpusMTBackend) Name() string {
	return b.endpoint.Name()
}

func (b *OpusMTBackend) SupportedLanguages() []language.Language {
	return b.codes.Supported()
}

func (b *OpusMTBackend) LanguageCode(l language.Language) (string, bool) {
	return b.codes.Code(l)
}

func (b *OpusMTBackend) Translate(ctx context.Context, req Request) (Result, error) {
	_, target, ok := resolvePair(&b.codes, req)
	if !ok {
		return Unsupported(), nil
	}
	if req.Text == "" {
		return Translated(""), nil
	}

	body := struct {
		Inputs string `json:"inputs"`
	}{
		Inputs: fmt.Sprintf(">>%s<< %s", target, req.Text),
	}

	var reply translationReply
	if err := b.endpoint.InvokeJSON(ctx, body, &reply); err != nil {
		return Result{}, err
	}

	text, err := reply.first(b.Name())
	if err != nil {
		return Result{}, err
	}
	return Translated(text), nil
}
