/**
* Name: 			voice_handler.go
* Description: 		음성 채팅 및 녹음 오디오 스트리밍
* Workflow: 		업로드 음성 STT, 채팅 턴, 응답 TTS, 클립 보관, 오디오 URL 반환
 */
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"healprint/internal/archiver"
	"healprint/internal/chat"
	"healprint/internal/llm"
	"healprint/internal/models"
	"healprint/internal/observability"
	"healprint/internal/storage"

	"github.com/gin-gonic/gin"
)

type VoiceChatResponse struct {
	*chat.ChatResponse
	Transcript string `json:"transcript" example:"I have dry skin on my cheeks"`
	AudioURL   string `json:"audio_url,omitempty" example:"/conversation/8a1f.../audio/s2c_1730000000000_2.wav"`
}

type AudioClip struct {
	FileName  string    `json:"file_name" example:"c2s_1730000000000_1.wav"`
	Role      string    `json:"role" example:"user"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type AudioListResponse struct {
	ConversationID string      `json:"conversation_id"`
	Clips          []AudioClip `json:"clips"`
}

type VoiceHandler struct {
	chat     *chat.Service
	stt      llm.Transcriber
	tts      llm.Synthesizer
	archive  *archiver.Archiver
	maxBytes int64
}

// NewVoiceHandler stt/tts 가 nil 이면 /chat/voice 는 503
func NewVoiceHandler(svc *chat.Service, stt llm.Transcriber, tts llm.Synthesizer, archive *archiver.Archiver, maxBytes int64) *VoiceHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &VoiceHandler{chat: svc, stt: stt, tts: tts, archive: archive, maxBytes: maxBytes}
}

func (h *VoiceHandler) Mount(r gin.IRouter, limit gin.HandlerFunc) {
	r.POST("/chat/voice", limit, h.VoiceChat)
	r.GET("/conversation/:conversation_id/audio", h.ListAudio)
	r.GET("/conversation/:conversation_id/audio/:filename", h.StreamAudio)
}

// VoiceChat godoc
// @Summary      음성 채팅
// @Description  LINEAR16 16kHz WAV 음성을 텍스트로 변환해 채팅 턴을 실행하고, 응답 음성의 URL을 함께 반환합니다.
// @Tags         Voice
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio           formData  file    true   "WAV 음성 파일"
// @Param        user_id         formData  string  true   "사용자 ID"
// @Param        conversation_id formData  string  false  "대화 ID"
// @Success      200 {object} handler.VoiceChatResponse
// @Failure      400 {object} handler.ErrorResponse "음성 파일 누락"
// @Failure      413 {object} handler.ErrorResponse "파일 크기 초과"
// @Failure      422 {object} handler.ErrorResponse "음성 인식 실패"
// @Failure      503 {object} handler.ErrorResponse "음성 기능 비활성화"
// @Router       /chat/voice [post]
func (h *VoiceHandler) VoiceChat(c *gin.Context) {
	if h.stt == nil || h.tts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Voice chat is not enabled"})
		return
	}
	ctx := c.Request.Context()
	log := observability.LoggerFromContext(ctx)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Audio file is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read audio file"})
		return
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil || len(audio) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read audio file"})
		return
	}

	userID := strings.TrimSpace(c.PostForm("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	transcript, err := h.stt.Transcribe(ctx, audio)
	if err != nil {
		if errors.Is(err, llm.ErrNoSpeech) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No speech recognized"})
			return
		}
		log.Error("VoiceChat(): transcription failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Speech recognition failed"})
		return
	}

	resp, err := h.chat.Chat(ctx, chat.ChatRequest{
		Message:        transcript,
		UserID:         userID,
		ConversationID: c.PostForm("conversation_id"),
	})
	if err != nil {
		writeChatError(c, err)
		return
	}

	out := VoiceChatResponse{ChatResponse: resp, Transcript: transcript}
	if _, err := h.archive.Save(ctx, resp.ConversationID, userID, models.RoleUser, audio, "wav"); err != nil {
		log.Warn("VoiceChat(): failed to archive user clip", "error", err)
	}

	speech, err := h.tts.Synthesize(ctx, resp.Response)
	if err != nil {
		// 텍스트 응답은 이미 저장됨, 음성 없이 반환
		log.Warn("VoiceChat(): synthesis failed", "error", err)
		c.JSON(http.StatusOK, out)
		return
	}
	rec, err := h.archive.Save(ctx, resp.ConversationID, userID, models.RoleAssistant, speech, "wav")
	if err != nil {
		log.Warn("VoiceChat(): failed to archive reply clip", "error", err)
	} else {
		out.AudioURL = audioURL(resp.ConversationID, rec.FileName)
	}
	c.JSON(http.StatusOK, out)
}

// StreamAudio godoc
// @Summary      녹음된 오디오 파일 스트리밍
// @Description  음성 채팅에서 보관된 클립(.wav)을 재생합니다.
// @Tags         Voice
// @Produce      audio/wav
// @Param        conversation_id path  string  true  "대화 ID"
// @Param        filename        path  string  true  "오디오 파일명 (예: s2c_1730000000000_2.wav)"
// @Success      200      {file}    file    "오디오 파일 스트림"
// @Failure      404      {object}  handler.ErrorResponse "파일을 찾을 수 없음"
// @Router       /conversation/{conversation_id}/audio/{filename} [get]
func (h *VoiceHandler) StreamAudio(c *gin.Context) {
	rec, err := h.archive.Lookup(c.Request.Context(), c.Param("conversation_id"), c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audio file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch record"})
		return
	}
	c.Header("Content-Type", "audio/wav")
	c.File(rec.FilePath)
}

// ListAudio godoc
// @Summary      대화 오디오 목록
// @Description  음성 채팅에서 보관된 클립을 시간순으로 반환합니다.
// @Tags         Voice
// @Produce      json
// @Param        conversation_id path  string  true  "대화 ID"
// @Success      200      {object}  handler.AudioListResponse
// @Router       /conversation/{conversation_id}/audio [get]
func (h *VoiceHandler) ListAudio(c *gin.Context) {
	conversationID := c.Param("conversation_id")
	records, err := h.archive.List(c.Request.Context(), conversationID)
	if err != nil {
		observability.LoggerFromContext(c.Request.Context()).Error("ListAudio(): failed to list records",
			"conversation_id", conversationID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}

	clips := make([]AudioClip, 0, len(records))
	for _, rec := range records {
		clips = append(clips, AudioClip{
			FileName:  rec.FileName,
			Role:      rec.Role,
			URL:       audioURL(conversationID, rec.FileName),
			CreatedAt: rec.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, AudioListResponse{ConversationID: conversationID, Clips: clips})
}

func audioURL(conversationID, fileName string) string {
	return fmt.Sprintf("/conversation/%s/audio/%s", conversationID, fileName)
}
