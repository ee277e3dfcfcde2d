package api

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

func decodeBase64(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// fileWire is the JSON wire shape for a domain.File in HTTP requests.
type fileWire struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	ContentB64 string `json:"contentBase64"`
}

type processRequestWire struct {
	Files              []fileWire          `json:"files"`
	DefaultOperations  []string            `json:"defaultOperations"`
	PerFileOperations  map[string][]string `json:"perFileOperations"`
}

type operationResultWire struct {
	FileID         string `json:"fileId"`
	OperationKind  string `json:"operationKind"`
	Status         string `json:"status"`
	Details        string `json:"details"`
	ResultLocation string `json:"resultLocation"`
}

func toOperationResultWire(r domain.OperationResult) operationResultWire {
	return operationResultWire{
		FileID:         r.FileID,
		OperationKind:  string(r.OperationKind),
		Status:         string(r.Status),
		Details:        r.Details,
		ResultLocation: r.ResultLocation,
	}
}

type summaryWire struct {
	TotalFiles      int                    `json:"totalFiles"`
	SuccessfulCount int                    `json:"successfulCount"`
	FailedCount     int                    `json:"failedCount"`
	Results         []operationResultWire  `json:"results"`
}

func toSummaryWire(s domain.Summary) summaryWire {
	results := s.Results()
	wire := make([]operationResultWire, len(results))
	for i, r := range results {
		wire[i] = toOperationResultWire(r)
	}
	return summaryWire{
		TotalFiles:      s.TotalFiles,
		SuccessfulCount: s.SuccessfulCount,
		FailedCount:     s.FailedCount,
		Results:         wire,
	}
}

func (w processRequestWire) toDomain() (domain.Request, error) {
	files := make([]domain.File, 0, len(w.Files))
	for _, f := range w.Files {
		content, err := decodeBase64(f.ContentB64)
		if err != nil {
			return domain.Request{}, err
		}
		files = append(files, domain.NewFile(f.ID, f.Name, content, f.Type, f.Size))
	}

	defaults := make([]domain.OperationKind, len(w.DefaultOperations))
	for i, op := range w.DefaultOperations {
		defaults[i] = domain.ParseOperationKind(op)
	}

	var perFile map[string][]domain.OperationKind
	if len(w.PerFileOperations) > 0 {
		perFile = make(map[string][]domain.OperationKind, len(w.PerFileOperations))
		for id, ops := range w.PerFileOperations {
			kinds := make([]domain.OperationKind, len(ops))
			for i, op := range ops {
				kinds[i] = domain.ParseOperationKind(op)
			}
			perFile[id] = kinds
		}
	}

	return domain.NewRequest(files, defaults, perFile)
}

// RegisterHTTP wires ProcessFile onto POST /v1/process and
// StreamFileOperations onto GET /v1/stream (server-sent "result" events), the two
// endpoints spec §6 calls out as worth a concrete HTTP adapter.
func RegisterHTTP(router gin.IRouter, svc Service) {
	router.POST("/v1/process", func(c *gin.Context) {
		var wire processRequestWire
		if err := c.ShouldBindJSON(&wire); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}

		req, err := wire.toDomain()
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}

		summary, err := svc.ProcessFile(c.Request.Context(), req)
		if err != nil {
			writeMappedError(c, err)
			return
		}
		c.JSON(http.StatusOK, toSummaryWire(summary))
	})

	router.GET("/v1/stream", func(c *gin.Context) {
		var wire processRequestWire
		if err := c.ShouldBindJSON(&wire); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}

		req, err := wire.toDomain()
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}

		c.Stream(func(w io.Writer) bool {
			err := svc.StreamFileOperations(c.Request.Context(), req, func(r domain.OperationResult) error {
				c.SSEvent("result", toOperationResultWire(r))
				if rw, ok := w.(gin.ResponseWriter); ok {
					rw.Flush()
				}
				return nil
			})
			if err != nil {
				c.SSEvent("error", err.Error())
			}
			return false
		})
	})
}

type errorWire struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeMappedError(c *gin.Context, err error) {
	code, message := MapError(err)
	status := http.StatusInternalServerError
	if code == "INVALID_ARGUMENT" {
		status = http.StatusBadRequest
	}
	writeError(c, status, code, message)
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorWire{Code: code, Message: message})
}
