/**
* Name: 			stt.go
* Description: 		Google Speech-to-Text 음성 인식
* Workflow: 		클라이언트 생성, 녹음 파일 인식, 텍스트 반환
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

var ErrNoSpeech = errors.New("no speech recognized")

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Close() error
}

type VoiceOptions struct {
	CredentialsFile string
	LanguageCode    string
	VoiceName       string
	SampleRateHertz int32
}

type GoogleTranscriber struct {
	client *speech.Client
	opts   VoiceOptions
}

// ErrNoCredentials 음성 클라이언트는 서비스 계정 키 파일이 필요
var ErrNoCredentials = errors.New("GOOGLE_APPLICATION_CREDENTIALS is not set")

// STT 클라이언트 초기화
func NewGoogleTranscriber(ctx context.Context, opts VoiceOptions) (*GoogleTranscriber, error) {
	if opts.CredentialsFile == "" {
		return nil, fmt.Errorf("NewGoogleTranscriber(): %w", ErrNoCredentials)
	}
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(opts.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("NewGoogleTranscriber(): failed to create speech client: %w", err)
	}
	return &GoogleTranscriber{client: client, opts: opts}, nil
}

// Transcribe recognizes a short LINEAR16 mono clip in one request.
func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            t.opts.SampleRateHertz,
			AudioChannelCount:          1,
			LanguageCode:               t.opts.LanguageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("Transcribe(): recognize failed: %w", err)
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(strings.TrimSpace(result.Alternatives[0].Transcript))
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNoSpeech
	}
	slog.Debug("Transcribe(): final result", "chars", len(text))
	return text, nil
}

func (t *GoogleTranscriber) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
