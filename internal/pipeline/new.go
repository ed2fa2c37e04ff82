package pipeline

import (
	"github.com/nguyentantai21042004/subtitle-flow/internal/config"
	"github.com/nguyentantai21042004/subtitle-flow/internal/extractor"
	"github.com/nguyentantai21042004/subtitle-flow/internal/logger"
	"github.com/nguyentantai21042004/subtitle-flow/internal/transcriber"
	"github.com/nguyentantai21042004/subtitle-flow/internal/translator"
)

type implPipeline struct {
	cfg         *config.Config
	extractor   extractor.Extractor
	transcriber transcriber.Transcriber
	translator  translator.Translator
	logger      logger.Logger
}

// New creates a Pipeline with explicitly injected stage dependencies,
// so tests can swap in fakes for any stage.
func New(cfg *config.Config, ext extractor.Extractor, tr transcriber.Transcriber, tl translator.Translator, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		extractor:   ext,
		transcriber: tr,
		translator:  tl,
		logger:      log,
	}
}
