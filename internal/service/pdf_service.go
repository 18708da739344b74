package service

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

type PDFService struct {
	logger *zap.Logger
}

// NewPDFService creates a new PDF text extraction service backed by go-fitz
func NewPDFService(logger *zap.Logger) *PDFService {
	return &PDFService{
		logger: logger,
	}
}

// ExtractText extracts text from all pages of a PDF file
func (s *PDFService) ExtractText(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder

	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", pdfPath),
				zap.Error(err),
			)
			continue
		}

		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n") // Add newline between pages
		}
	}

	text := strings.TrimSpace(textBuilder.String())

	if text == "" {
		return "", fmt.Errorf("no text found in PDF")
	}

	s.logger.Info("PDF text extracted",
		zap.String("file", pdfPath),
		zap.Int("pages", doc.NumPage()),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

// ExtractTextFromReader extracts text from PDF data supplied by a reader.
// go-fitz needs a file path, so the data is staged in a temp file.
func (s *PDFService) ExtractTextFromReader(reader io.Reader) (string, error) {
	tmpFile, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, reader); err != nil {
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to flush temp file: %w", err)
	}

	return s.ExtractText(tmpFile.Name())
}
