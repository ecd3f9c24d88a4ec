package stderr

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Forward logs every non-empty line read from r until EOF.
func Forward(r io.Reader, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			logger.Warn("stderr", zap.String("line", line))
		}
	}
}
