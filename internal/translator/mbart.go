package translator

import (
	"context"

	"github.com/valpere/tradcompare/internal/language"
)

const DefaultMBartEndpoint = "facebook-mbart-large-50-many-to-many-mmt"

var mbartCodes = language.CodeMap{
	language.Spanish:    "es_XX",
	language.Italian:    "it_IT",
	language.Portuguese: "pt_XX",
}

type mbartRequest struct {
	Inputs     []string         `json:"inputs"`
	Parameters mbartLangOptions `json:"parameters"`
}

type mbartLangOptions struct {
	SrcLang string `json:"src_lang"`
	TgtLang string `json:"tgt_lang"`
}

// MBartBackend translates through an mBART-50 many-to-many endpoint.
type MBartBackend struct {
	endpoint *Endpoint
	codes    language.CodeMap
}

func NewMBartBackend(endpoint *Endpoint) *MBartBackend {
	return &MBartBackend{endpoint: endpoint, codes: mbartCodes}
}

func (b *MBartBackend) Name() string {
	return b.endpoint.Name()
}

func (b *MBartBackend) SupportedLanguages() []language.Language {
	return b.codes.Supported()
}

func (b *MBartBackend) LanguageCode(l language.Language) (string, bool) {
	return b.codes.Code(l)
}

func (b *MBartBackend) Translate(ctx context.Context, req Request) (Result, error) {
	source, target, ok := resolvePair(&b.codes, req)
	if !ok {
		return Unsupported(), nil
	}
	if req.Text == "" {
		return Translated(""), nil
	}

	body := mbartRequest{
		Inputs: []string{req.Text},
		Parameters: mbartLangOptions{
			SrcLang: source,
			TgtLang: target,
		},
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
