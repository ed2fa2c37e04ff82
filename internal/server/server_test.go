package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/subtitle-flow/internal/config"
	"github.com/nguyentantai21042004/subtitle-flow/internal/logger"
	"github.com/nguyentantai21042004/subtitle-flow/internal/pipeline"
	"github.com/nguyentantai21042004/subtitle-flow/internal/subtitle"
)

// fakePipeline writes a fixed subtitle file instead of running the
// real stages.
type fakePipeline struct {
	segments []subtitle.Segment
	err      error
	gotJob   pipeline.Job
}

func (f *fakePipeline) Run(ctx context.Context, job pipeline.Job) (*pipeline.Result, error) {
	f.gotJob = job
	if f.err != nil {
		return nil, f.err
	}
	if err := subtitle.WriteFile(job.SubtitlePath, f.segments); err != nil {
		return nil, err
	}
	return &pipeline.Result{
		SubtitlePath: job.SubtitlePath,
		Segments:     f.segments,
		Elapsed:      "1s",
	}, nil
}

func testServer(t *testing.T, pipe pipeline.Pipeline) *Server {
	t.Helper()
	cfg := &config.Config{
		Whisper: config.WhisperConfig{ModelPath: "m.bin", BinaryPath: "whisper"},
		Paths:   config.PathsConfig{Temp: t.TempDir()},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return New(cfg, pipe, logger.New("error"))
}

func multipartUpload(t *testing.T, source, target string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("video", "clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.Copy(fw, strings.NewReader("fake video bytes")); err != nil {
		t.Fatal(err)
	}
	if err := mw.WriteField("source", source); err != nil {
		t.Fatal(err)
	}
	if err := mw.WriteField("target", target); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	return &body, mw.FormDataContentType()
}

func TestHandleIndex(t *testing.T) {
	s := testServer(t, &fakePipeline{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="video"`) {
		t.Error("missing upload control")
	}
	if !strings.Contains(body, `<option value="ta">`) {
		t.Error("missing language options")
	}
}

func TestHandleTranslate(t *testing.T) {
	fake := &fakePipeline{segments: []subtitle.Segment{
		{Start: 0, End: 1.2, Text: "Bonjour"},
		{Start: 1.2, End: 3, Text: "Monde"},
	}}
	s := testServer(t, fake)

	body, contentType := multipartUpload(t, "en", "fr")
	req := httptest.NewRequest(http.MethodPost, "/translate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	if fake.gotJob.SourceLang != "en" || fake.gotJob.TargetLang != "fr" {
		t.Errorf("job languages = %q -> %q", fake.gotJob.SourceLang, fake.gotJob.TargetLang)
	}

	out := rec.Body.String()
	if !strings.Contains(out, `srclang="fr"`) {
		t.Error("player track not declared in target language")
	}
	if !strings.Contains(out, "data:video/mp4;base64,") {
		t.Error("video not embedded")
	}
	if !strings.Contains(out, "data:text/vtt;base64,") {
		t.Error("subtitle track not embedded")
	}
	if !strings.Contains(out, "2 cues") {
		t.Errorf("cue count missing: %s", out)
	}
}

func TestHandleTranslateMissingFile(t *testing.T) {
	s := testServer(t, &fakePipeline{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("source", "en")
	mw.WriteField("target", "fr")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/translate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTranslateUnsupportedLanguage(t *testing.T) {
	s := testServer(t, &fakePipeline{})

	body, contentType := multipartUpload(t, "en", "xx")
	req := httptest.NewRequest(http.MethodPost, "/translate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTranslatePipelineFailure(t *testing.T) {
	fake := &fakePipeline{err: &pipeline.StageError{
		Stage:        pipeline.StageTranslate,
		SegmentIndex: 4,
		Err:          errors.New("rate limited"),
	}}
	s := testServer(t, fake)

	body, contentType := multipartUpload(t, "en", "fr")
	req := httptest.NewRequest(http.MethodPost, "/translate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "translation") {
		t.Errorf("failure message should name the stage: %s", rec.Body.String())
	}
}

func TestJobFailureMessage(t *testing.T) {
	plain := jobFailureMessage(errors.New("boom"))
	if !strings.Contains(plain, "Job failed") {
		t.Errorf("plain message = %q", plain)
	}

	staged := jobFailureMessage(&pipeline.StageError{
		Stage: pipeline.StageExtract, SegmentIndex: -1, Err: errors.New("no audio"),
	})
	if !strings.Contains(staged, "audio extraction") {
		t.Errorf("staged message = %q", staged)
	}
}
