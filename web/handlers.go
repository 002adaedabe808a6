package web

import (
	"errors"
	"io/fs"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/storage"
)

type labelInfo struct {
	Label       annotation.Label `json:"label"`
	Description string           `json:"description"`
}

type fileInfo struct {
	File        string `json:"file"`
	Annotations int    `json:"annotations"`
}

type filesResponse struct {
	Files []fileInfo `json:"files"`
	Total int        `json:"total"`
}

type sentenceInfo struct {
	Index int              `json:"index"`
	Text  string           `json:"text"`
	Label annotation.Label `json:"label"`
}

type sentencesResponse struct {
	File        string         `json:"file"`
	Annotations int            `json:"annotations"`
	Sentences   []sentenceInfo `json:"sentences"`
}

type pairResponse struct {
	dataset.Record
	Label annotation.Label `json:"label"`
}

type labelRequest struct {
	Label string `json:"label" form:"label"`
}

func (s *Server) labels(c echo.Context) error {
	var out []labelInfo
	for _, l := range annotation.Labels() {
		out = append(out, labelInfo{Label: l, Description: l.Description()})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) files(c echo.Context) error {
	names, err := s.corpus.Files("")
	if err != nil {
		return err
	}

	all, err := s.repo.All()
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, a := range all {
		counts[a.File]++
	}

	out := filesResponse{Files: []fileInfo{}, Total: len(all)}
	for _, name := range names {
		out.Files = append(out.Files, fileInfo{File: name, Annotations: counts[name]})
	}

	sort.SliceStable(out.Files, func(i, j int) bool {
		return out.Files[i].Annotations > out.Files[j].Annotations
	})

	return c.JSON(http.StatusOK, out)
}

func (s *Server) sentences(c echo.Context) error {
	file, err := fileParam(c)
	if err != nil {
		return err
	}

	texts, err := s.corpus.EnglishSentences(file)
	if err != nil {
		return notFound(err)
	}

	anns, err := s.repo.ByFile(file)
	if err != nil {
		return err
	}

	labels := map[int]annotation.Label{}
	for _, a := range anns {
		labels[a.Sentence] = a.Label
	}

	out := sentencesResponse{File: file, Annotations: len(anns), Sentences: make([]sentenceInfo, len(texts))}
	for i, text := range texts {
		label, ok := labels[i]
		if !ok {
			label = annotation.None
		}
		out.Sentences[i] = sentenceInfo{Index: i, Text: text, Label: label}
	}

	return c.JSON(http.StatusOK, out)
}

func (s *Server) pair(c echo.Context) error {
	file, index, err := sentenceParams(c)
	if err != nil {
		return err
	}

	rec, err := s.corpus.Sentence(file, index)
	if err != nil {
		return notFound(err)
	}

	label, err := s.currentLabel(file, index)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pairResponse{Record: rec, Label: label})
}

func (s *Server) label(c echo.Context) error {
	file, index, err := sentenceParams(c)
	if err != nil {
		return err
	}

	var req labelRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	label, err := annotation.ParseLabel(req.Label)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// only loaded pairs can be labelled, see classify.Examples
	if _, err := s.corpus.Sentence(file, index); err != nil {
		return notFound(err)
	}

	a := annotation.Annotation{File: file, Sentence: index, Label: label}
	if err := s.repo.Upsert(a); err != nil {
		return err
	}

	s.logger.Info("annotated", "file", file, "sentence", index, "label", label)
	return c.JSON(http.StatusOK, a)
}

func (s *Server) currentLabel(file string, index int) (annotation.Label, error) {
	a, err := s.repo.Get(file, index)
	if errors.Is(err, storage.ErrNotFound) {
		return annotation.None, nil
	}
	if err != nil {
		return "", err
	}
	return a.Label, nil
}

func fileParam(c echo.Context) (string, error) {
	file := c.Param("file")
	if file == "" || strings.HasPrefix(file, ".") || strings.ContainsAny(file, `/\`) {
		return "", echo.NewHTTPError(http.StatusNotFound, "unknown file")
	}
	return file, nil
}

func sentenceParams(c echo.Context) (string, int, error) {
	file, err := fileParam(c)
	if err != nil {
		return "", 0, err
	}

	index, err := strconv.Atoi(c.Param("sent"))
	if err != nil || index < 0 {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "sentence index must be a non negative integer")
	}
	return file, index, nil
}

// notFound turns missing files and sentences into 404 responses.
func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, dataset.ErrSentenceOutOfRange) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return err
}
