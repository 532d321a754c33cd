package handler

import (
	"encoding/json"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/survey-admin-api/pkg/errors"
	"github.com/noah-isme/survey-admin-api/pkg/logger"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

// fail logs the raw cause and answers with a generic 500 carrying message.
func fail(c *gin.Context, log *zap.Logger, err error, message string) {
	logger.ForRequest(log, c).Error(message, zap.Error(err))
	response.Error(c, appErrors.Unhandled(err, message))
}

func missing(c *gin.Context, message string) {
	response.Error(c, appErrors.MissingParameter(message))
}

// resourceID reads the target document id from the path, falling back to ?id=.
func resourceID(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Query("id")
}

// bindPatch decodes the request body into dest and returns the top-level keys the client sent.
func bindPatch(c *gin.Context, dest interface{}) ([]string, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return nil, err
	}
	var sent map[string]json.RawMessage
	if err := json.Unmarshal(body, &sent); err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(sent))
	for k := range sent {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields, nil
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
