package translator

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/translate"
	"github.com/aws/aws-sdk-go-v2/aws"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xlanguage "golang.org/x/text/language"

	"github.com/valpere/tradcompare/internal/language"
)

type mockInvoker struct {
	invokeFunc func(ctx context.Context, endpoint string, body []byte) ([]byte, error)
	calls      []invokeCall
}

type invokeCall struct {
	endpoint string
	body     string
}

func (m *mockInvoker) Invoke(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	m.calls = append(m.calls, invokeCall{endpoint: endpoint, body: string(body)})
	if m.invokeFunc != nil {
		return m.invokeFunc(ctx, endpoint, body)
	}
	return []byte(`[{"translation_text": "mock result"}]`), nil
}

func replyWith(body string) func(context.Context, string, []byte) ([]byte, error) {
	return func(context.Context, string, []byte) ([]byte, error) {
		return []byte(body), nil
	}
}

type mockAmazonClient struct {
	translateFunc func(ctx context.Context, in *awstranslate.TranslateTextInput) (*awstranslate.TranslateTextOutput, error)
	inputs        []*awstranslate.TranslateTextInput
}

func (m *mockAmazonClient) TranslateText(ctx context.Context, in *awstranslate.TranslateTextInput, _ ...func(*awstranslate.Options)) (*awstranslate.TranslateTextOutput, error) {
	m.inputs = append(m.inputs, in)
	if m.translateFunc != nil {
		return m.translateFunc(ctx, in)
	}
	return &awstranslate.TranslateTextOutput{TranslatedText: aws.String("mock result")}, nil
}

type mockGoogleClient struct {
	translateFunc func(ctx context.Context, inputs []string, target xlanguage.Tag, opts *translate.Options) ([]translate.Translation, error)
	calls         int
	closed        bool
}

func (m *mockGoogleClient) Translate(ctx context.Context, inputs []string, target xlanguage.Tag, opts *translate.Options) ([]translate.Translation, error) {
	m.calls++
	if m.translateFunc != nil {
		return m.translateFunc(ctx, inputs, target, opts)
	}
	return []translate.Translation{{Text: "mock result"}}, nil
}

func (m *mockGoogleClient) Close() error {
	m.closed = true
	return nil
}

func TestOpusMTBackend_Translate(t *testing.T) {
	inv := &mockInvoker{invokeFunc: replyWith(`[{"translation_text": "Ciao"}]`)}
	b := NewOpusMTBackend(NewEndpoint(DefaultOpusMTEndpoint, inv))

	res, err := b.Translate(context.Background(), Request{
		Text:   "Hola",
		Source: language.Spanish,
		Target: language.Italian,
	})

	require.NoError(t, err)
	assert.Equal(t, Translated("Ciao"), res)
	require.Len(t, inv.calls, 1)
	assert.Equal(t, DefaultOpusMTEndpoint, inv.calls[0].endpoint)
	assert.JSONEq(t, `{"inputs": ">>ita<< Hola"}`, inv.calls[0].body)
}

func TestOpusMTBackend_TargetTags(t *testing.T) {
	tests := []struct {
		target language.Language
		want   string
	}{
		{language.Spanish, `{"inputs":">>spa<< text"}`},
		{language.Portuguese, `{"inputs":">>por<< text"}`},
		{language.Catalan, `{"inputs":">>cat<< text"}`},
		{language.Galician, `{"inputs":">>glg<< text"}`},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			inv := &mockInvoker{}
			b := NewOpusMTBackend(NewEndpoint("opus", inv))

			source := language.Italian
			_, err := b.Translate(context.Background(), Request{Text: "text", Source: source, Target: tt.target})

			require.NoError(t, err)
			require.Len(t, inv.calls, 1)
			assert.Equal(t, tt.want, inv.calls[0].body)
		})
	}
}

func TestOpusMTBackend_EmptyReply(t *testing.T) {
	inv := &mockInvoker{invokeFunc: replyWith(`[]`)}
	b := NewOpusMTBackend(NewEndpoint("opus", inv))

	_, err := b.Translate(context.Background(), Request{Text: "Hola", Source: language.Spanish, Target: language.Italian})

	assert.ErrorIs(t, err, ErrInvocation)
}

func TestEndpointBackends_MissingTranslationText(t *testing.T) {
	replies := []string{
		`[{"generated_text": "Ciao"}]`,
		`[null]`,
		`[{}]`,
		`[{"translation_text": null}]`,
	}

	for _, reply := range replies {
		t.Run(reply, func(t *testing.T) {
			inv := &mockInvoker{invokeFunc: replyWith(reply)}
			backends := []Backend{
				NewOpusMTBackend(NewEndpoint("opus", inv)),
				NewMBartBackend(NewEndpoint("mbart", inv)),
			}

			for _, b := range backends {
				_, err := b.Translate(context.Background(), Request{Text: "Hola", Source: language.Spanish, Target: language.Italian})
				require.ErrorIs(t, err, ErrInvocation, b.Name())
				assert.Contains(t, err.Error(), "missing translation_text")
			}
		})
	}
}

func TestOpusMTBackend_EmptyTranslationText(t *testing.T) {
	inv := &mockInvoker{invokeFunc: replyWith(`[{"translation_text": ""}]`)}
	b := NewOpusMTBackend(NewEndpoint("opus", inv))

	res, err := b.Translate(context.Background(), Request{Text: "Hola", Source: language.Spanish, Target: language.Italian})

	require.NoError(t, err)
	assert.Equal(t, Translated(""), res)
}

func TestMBartBackend_Translate(t *testing.T) {
	inv := &mockInvoker{invokeFunc: replyWith(`[{"translation_text": "Olá"}]`)}
	b := NewMBartBackend(NewEndpoint(DefaultMBartEndpoint, inv))

	res, err := b.Translate(context.Background(), Request{
		Text:   "Hola",
		Source: language.Spanish,
		Target: language.Portuguese,
	})

	require.NoError(t, err)
	assert.Equal(t, "Olá", res.String())
	require.Len(t, inv.calls, 1)
	assert.Equal(t, `{"inputs":["Hola"],"parameters":{"src_lang":"es_XX","tgt_lang":"pt_XX"}}`, inv.calls[0].body)
}

func TestMBartBackend_UnsupportedPair(t *testing.T) {
	tests := []struct {
		name   string
		source language.Language
		target language.Language
	}{
		{"catalan target", language.Spanish, language.Catalan},
		{"galician source", language.Galician, language.Italian},
		{"both unsupported", language.Catalan, language.Galician},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &mockInvoker{}
			b := NewMBartBackend(NewEndpoint("mbart", inv))

			res, err := b.Translate(context.Background(), Request{Text: "Hola", Source: tt.source, Target: tt.target})

			require.NoError(t, err)
			assert.Equal(t, StatusUnsupported, res.Status)
			assert.Equal(t, UnsupportedMessage, res.String())
			assert.Empty(t, inv.calls, "no endpoint call expected")
		})
	}
}

func TestMBartBackend_InvocationFailure(t *testing.T) {
	inv := &mockInvoker{invokeFunc: func(context.Context, string, []byte) ([]byte, error) {
		return nil, errors.New("connection refused")
	}}
	b := NewMBartBackend(NewEndpoint("mbart", inv))

	_, err := b.Translate(context.Background(), Request{Text: "Hola", Source: language.Spanish, Target: language.Italian})

	require.ErrorIs(t, err, ErrInvocation)
	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "mbart", invErr.Endpoint)
}

func TestEndpointBackends_EmptyText(t *testing.T) {
	inv := &mockInvoker{}
	backends := []Backend{
		NewOpusMTBackend(NewEndpoint("opus", inv)),
		NewMBartBackend(NewEndpoint("mbart", inv)),
	}

	for _, b := range backends {
		res, err := b.Translate(context.Background(), Request{Source: language.Spanish, Target: language.Italian})
		require.NoError(t, err)
		assert.Equal(t, Translated(""), res)
	}
	assert.Empty(t, inv.calls)
}

func TestAmazonTranslateBackend_EmptyText(t *testing.T) {
	client := &mockAmazonClient{}
	b := &AmazonTranslateBackend{client: client, codes: amazonCodes}

	res, err := b.Translate(context.Background(), Request{Source: language.Spanish, Target: language.Portuguese})

	require.NoError(t, err)
	assert.Equal(t, Translated(""), res)
	assert.Empty(t, client.inputs)
}

func TestGoogleBackend_EmptyText(t *testing.T) {
	client := &mockGoogleClient{}
	b := &GoogleBackend{client: client, codes: googleCodes}

	res, err := b.Translate(context.Background(), Request{Source: language.Spanish, Target: language.Galician})

	require.NoError(t, err)
	assert.Equal(t, Translated(""), res)
	assert.Equal(t, 0, client.calls)
}

func TestAmazonTranslateBackend_Translate(t *testing.T) {
	client := &mockAmazonClient{translateFunc: func(context.Context, *awstranslate.TranslateTextInput) (*awstranslate.TranslateTextOutput, error) {
		return &awstranslate.TranslateTextOutput{TranslatedText: aws.String("Olá")}, nil
	}}
	b := &AmazonTranslateBackend{client: client, codes: amazonCodes}

	res, err := b.Translate(context.Background(), Request{
		Text:   "Hola",
		Source: language.Spanish,
		Target: language.Portuguese,
	})

	require.NoError(t, err)
	assert.Equal(t, Translated("Olá"), res)
	require.Len(t, client.inputs, 1)
	assert.Equal(t, "Hola", aws.ToString(client.inputs[0].Text))
	assert.Equal(t, "es", aws.ToString(client.inputs[0].SourceLanguageCode))
	assert.Equal(t, "pt-PT", aws.ToString(client.inputs[0].TargetLanguageCode))
}

func TestAmazonTranslateBackend_Unsupported(t *testing.T) {
	client := &mockAmazonClient{}
	b := &AmazonTranslateBackend{client: client, codes: amazonCodes}

	res, err := b.Translate(context.Background(), Request{Text: "Ola", Source: language.Galician, Target: language.Spanish})

	require.NoError(t, err)
	assert.False(t, res.Supported())
	assert.Empty(t, client.inputs)
}

func TestAmazonTranslateBackend_ClientError(t *testing.T) {
	client := &mockAmazonClient{translateFunc: func(context.Context, *awstranslate.TranslateTextInput) (*awstranslate.TranslateTextOutput, error) {
		return nil, errors.New("UnrecognizedClientException")
	}}
	b := &AmazonTranslateBackend{client: client, codes: amazonCodes}

	_, err := b.Translate(context.Background(), Request{Text: "Hola", Source: language.Spanish, Target: language.Catalan})

	assert.ErrorIs(t, err, ErrInvocation)
	assert.Contains(t, err.Error(), AmazonTranslateName)
}

func TestGoogleBackend_Translate(t *testing.T) {
	var gotTarget xlanguage.Tag
	var gotOpts *translate.Options
	client := &mockGoogleClient{translateFunc: func(_ context.Context, inputs []string, target xlanguage.Tag, opts *translate.Options) ([]translate.Translation, error) {
		gotTarget, gotOpts = target, opts
		return []translate.Translation{{Text: "Ola"}}, nil
	}}
	b := &GoogleBackend{client: client, codes: googleCodes}

	res, err := b.Translate(context.Background(), Request{Text: "Hola", Source: language.Spanish, Target: language.Galician})

	require.NoError(t, err)
	assert.Equal(t, Translated("Ola"), res)
	assert.Equal(t, "gl", gotTarget.String())
	require.NotNil(t, gotOpts)
	assert.Equal(t, "es", gotOpts.Source.String())
	assert.Equal(t, translate.Text, gotOpts.Format)

	require.NoError(t, b.Close())
	assert.True(t, client.closed)
}

func TestGoogleBackend_NoTranslations(t *testing.T) {
	client := &mockGoogleClient{translateFunc: func(context.Context, []string, xlanguage.Tag, *translate.Options) ([]translate.Translation, error) {
		return nil, nil
	}}
	b := &GoogleBackend{client: client, codes: googleCodes}

	_, err := b.Translate(context.Background(), Request{Text: "Hola", Source: language.Spanish, Target: language.Italian})

	assert.ErrorIs(t, err, ErrInvocation)
}

func TestBackends_SupportedLanguages(t *testing.T) {
	inv := &mockInvoker{}

	assert.Equal(t, language.All(), NewOpusMTBackend(NewEndpoint("a", inv)).SupportedLanguages())
	assert.Equal(t,
		[]language.Language{language.Spanish, language.Italian, language.Portuguese},
		NewMBartBackend(NewEndpoint("b", inv)).SupportedLanguages())
	assert.Equal(t,
		[]language.Language{language.Spanish, language.Italian, language.Portuguese, language.Catalan},
		(&AmazonTranslateBackend{codes: amazonCodes}).SupportedLanguages())
	assert.Equal(t, language.All(), (&GoogleBackend{codes: googleCodes}).SupportedLanguages())
}

func TestBackends_Names(t *testing.T) {
	inv := &mockInvoker{}

	assert.Equal(t, DefaultOpusMTEndpoint, NewOpusMTBackend(NewEndpoint(DefaultOpusMTEndpoint, inv)).Name())
	assert.Equal(t, DefaultMBartEndpoint, NewMBartBackend(NewEndpoint(DefaultMBartEndpoint, inv)).Name())
	assert.Equal(t, "aws-translate", (&AmazonTranslateBackend{}).Name())
	assert.Equal(t, "google-translate", (&GoogleBackend{}).Name())
}

func TestBackends_LanguageCode(t *testing.T) {
	inv := &mockInvoker{}
	backends := []CodeReporter{
		NewOpusMTBackend(NewEndpoint("a", inv)),
		NewMBartBackend(NewEndpoint("b", inv)),
		&AmazonTranslateBackend{codes: amazonCodes},
		&GoogleBackend{codes: googleCodes},
	}
	want := []string{"por", "pt_XX", "pt-PT", "pt"}

	for i, b := range backends {
		code, ok := b.LanguageCode(language.Portuguese)
		assert.True(t, ok)
		assert.Equal(t, want[i], code)
	}

	_, ok := backends[1].LanguageCode(language.Galician)
	assert.False(t, ok)
}
