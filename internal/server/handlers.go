package server

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/nguyentantai21042004/subtitle-flow/internal/export"
	"github.com/nguyentantai21042004/subtitle-flow/internal/language"
	"github.com/nguyentantai21042004/subtitle-flow/internal/pipeline"
	"github.com/nguyentantai21042004/subtitle-flow/internal/player"
)

type indexData struct {
	Languages []string
	Error     string
}

type resultData struct {
	Player      template.HTML
	FileName    string
	SourceLang  string
	TargetLang  string
	CueCount    int
	Elapsed     string
	SubtitleURI template.URL
	DocxURI     template.URL
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", indexData{Languages: s.cfg.Languages})
}

// handleTranslate runs one full job synchronously: save the upload,
// run the pipeline, respond with the inline player page. All job
// files live in a scratch dir removed when the handler returns.
func (s *Server) handleTranslate(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return s.renderError(c, http.StatusBadRequest, "No video file uploaded.")
	}

	sourceLang := language.Normalize(c.FormValue("source"))
	targetLang := language.Normalize(c.FormValue("target"))
	if !language.Supported(sourceLang, s.cfg.Languages) || !language.Supported(targetLang, s.cfg.Languages) {
		return s.renderError(c, http.StatusBadRequest, "Unsupported language selection.")
	}

	jobDir, err := os.MkdirTemp(s.cfg.Paths.Temp, "upload-")
	if err != nil {
		s.logger.Error(ctx, "Failed to create job dir: %v", err)
		return s.renderError(c, http.StatusInternalServerError, "Could not allocate working space.")
	}
	defer os.RemoveAll(jobDir)

	videoName := filepath.Base(fileHeader.Filename)
	videoPath := filepath.Join(jobDir, videoName)
	if err := saveUpload(fileHeader, videoPath); err != nil {
		s.logger.Error(ctx, "Failed to save upload: %v", err)
		return s.renderError(c, http.StatusInternalServerError, "Could not store the uploaded video.")
	}

	vttPath := filepath.Join(jobDir, "subtitles.vtt")
	res, err := s.pipeline.Run(ctx, pipeline.Job{
		VideoPath:    videoPath,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		SubtitlePath: vttPath,
	})
	if err != nil {
		s.logger.Error(ctx, "Job failed for %s: %v", videoName, err)
		return s.renderError(c, http.StatusBadGateway, jobFailureMessage(err))
	}

	videoBytes, err := os.ReadFile(videoPath)
	if err != nil {
		return s.renderError(c, http.StatusInternalServerError, "Could not read back the uploaded video.")
	}
	vttBytes, err := os.ReadFile(vttPath)
	if err != nil {
		return s.renderError(c, http.StatusInternalServerError, "Could not read the generated subtitles.")
	}

	fragment, err := player.Build(videoName, videoBytes, vttBytes, targetLang)
	if err != nil {
		return s.renderError(c, http.StatusInternalServerError, "Could not assemble the player.")
	}

	data := resultData{
		Player:      fragment,
		FileName:    videoName,
		SourceLang:  sourceLang,
		TargetLang:  targetLang,
		CueCount:    len(res.Segments),
		Elapsed:     res.Elapsed,
		SubtitleURI: template.URL(player.DataURI("text/vtt", vttBytes)),
	}

	// Transcript download is best-effort; the player page works
	// without it.
	docxPath := filepath.Join(jobDir, "transcript.docx")
	if err := export.TranscriptDocx(videoName, res.Segments, docxPath); err != nil {
		s.logger.Warn(ctx, "Transcript export failed: %v", err)
	} else if docxBytes, err := os.ReadFile(docxPath); err == nil {
		data.DocxURI = template.URL(player.DataURI(
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document", docxBytes))
	}

	return c.Render(http.StatusOK, "result.html", data)
}

func (s *Server) renderError(c echo.Context, status int, msg string) error {
	return c.Render(status, "index.html", indexData{
		Languages: s.cfg.Languages,
		Error:     msg,
	})
}

// jobFailureMessage names the failing stage for the user.
func jobFailureMessage(err error) string {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		if stageErr.SegmentIndex >= 0 {
			return fmt.Sprintf("Job failed during %s (segment %d). Please try again.", stageErr.Stage, stageErr.SegmentIndex)
		}
		return fmt.Sprintf("Job failed during %s. Please try again.", stageErr.Stage)
	}
	return "Job failed. Please try again."
}

func saveUpload(fileHeader *multipart.FileHeader, dst string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create upload destination: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write upload: %w", err)
	}
	return out.Close()
}
