/**
* Name: 			tts.go
* Description: 		Google Text-to-Speech 음성 합성
* Workflow: 		클라이언트 생성, 텍스트 전송, 오디오 수신
 */

package llm

import (
	"context"
	"fmt"
	"log/slog"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Close() error
}

// TTS 연결 정보
type GoogleSynthesizer struct {
	client *texttospeech.Client
	opts   VoiceOptions
}

// TTS 클라이언트 초기화
func NewGoogleSynthesizer(ctx context.Context, opts VoiceOptions) (*GoogleSynthesizer, error) {
	if opts.CredentialsFile == "" {
		return nil, fmt.Errorf("NewGoogleSynthesizer(): %w", ErrNoCredentials)
	}
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(opts.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("NewGoogleSynthesizer(): failed to create TTS client: %w", err)
	}
	return &GoogleSynthesizer{client: client, opts: opts}, nil
}

// Synthesize returns LINEAR16 audio (WAV container) for text.
func (t *GoogleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: t.opts.LanguageCode,
			Name:         t.opts.VoiceName,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: t.opts.SampleRateHertz,
		},
	}

	resp, err := t.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Synthesize(): SynthesizeSpeech failed: %w", err)
	}
	slog.Debug("Synthesize(): succeeded", "bytes", len(resp.AudioContent))
	return resp.AudioContent, nil
}

// TTS 클라이언트 종료
func (t *GoogleSynthesizer) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
