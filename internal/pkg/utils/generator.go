package utils

import (
	"clinica-service/internal/pkg/constvars"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateObjectName builds a unique object path such as
// avatars/<owner>/20240101_150405_<uuid>.png.
func GenerateObjectName(prefix, owner, fileExtension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s/%s/%s_%s%s", prefix, owner, timestamp, uuid.NewString(), fileExtension)
}
