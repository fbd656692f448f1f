package archiver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"healprint/internal/models"
	"healprint/internal/storage"
)

// c2s: client to server (사용자 음성), s2c: server to client (TTS 응답)
const (
	DirectionC2S = "c2s"
	DirectionS2C = "s2c"
)

var ErrInvalidName = errors.New("invalid record file name")

// Archiver 음성 대화 클립을 디스크에 저장하고 records 테이블에 기록
type Archiver struct {
	baseDir string
	records storage.RecordRepository
	counter atomic.Uint64
	now     func() time.Time
}

func New(baseDir string, records storage.RecordRepository) (*Archiver, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("archiver.New(): failed to create archive directory: %w", err)
	}
	return &Archiver{baseDir: baseDir, records: records, now: time.Now}, nil
}

// Save 클립 하나를 <baseDir>/<conversation>/<direction>_<ts>_<n>.<ext> 로 저장
func (a *Archiver) Save(ctx context.Context, conversationID, userID, role string, data []byte, ext string) (*models.Record, error) {
	if !validSegment(conversationID) {
		return nil, ErrInvalidName
	}
	direction := DirectionC2S
	if role == models.RoleAssistant {
		direction = DirectionS2C
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "wav"
	}

	dir := filepath.Join(a.baseDir, conversationID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("Archiver.Save(): %w", err)
	}

	now := a.now()
	count := a.counter.Add(1)
	fileName := fmt.Sprintf("%s_%d_%d.%s", direction, now.UnixMilli(), count, ext)
	finalPath := filepath.Join(dir, fileName)

	tmp, err := os.CreateTemp(dir, ".tmp-"+direction+"-*")
	if err != nil {
		return nil, fmt.Errorf("Archiver.Save(): %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("Archiver.Save(): failed to write clip: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("Archiver.Save(): %w", err)
	}
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("Archiver.Save(): %w", err)
	}

	rec := &models.Record{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		FileName:       fileName,
		FilePath:       finalPath,
		CreatedAt:      now,
	}
	if err := a.records.CreateRecord(ctx, rec); err != nil {
		os.Remove(finalPath)
		return nil, err
	}
	slog.DebugContext(ctx, "Archiver.Save(): clip archived",
		"conversation_id", conversationID, "file", fileName, "bytes", len(data))
	return rec, nil
}

// Lookup 저장된 클립의 메타데이터. 파일이 사라졌으면 ErrRecordNotFound
func (a *Archiver) Lookup(ctx context.Context, conversationID, fileName string) (*models.Record, error) {
	if !validSegment(conversationID) || !validSegment(fileName) {
		return nil, storage.ErrRecordNotFound
	}
	rec, err := a.records.GetRecord(ctx, conversationID, fileName)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(rec.FilePath); err != nil {
		return nil, storage.ErrRecordNotFound
	}
	return rec, nil
}

func (a *Archiver) List(ctx context.Context, conversationID string) ([]models.Record, error) {
	return a.records.ListRecords(ctx, conversationID)
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
