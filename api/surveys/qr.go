package surveys

import (
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrSize = 256

// QRCode renders the public survey link as a PNG.
func QRCode(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, qrSize)
}

func (h *Handler) QRCodeHandler(responseWriter http.ResponseWriter, request *http.Request) {
	survey, ok := h.loadOwnedSurvey(responseWriter, request)
	if !ok {
		return
	}

	png, err := QRCode(PublicURL(h.PublicBaseURL, survey.Slug))
	if err != nil {
		h.Logger.Error("qr encode failed", zap.String("survey_id", survey.ID), zap.Error(err))
		writeError(responseWriter, err)
		return
	}

	responseWriter.Header().Set("Content-Type", "image/png")
	responseWriter.Header().Set("Content-Length", strconv.Itoa(len(png)))
	responseWriter.WriteHeader(http.StatusOK)
	_, _ = responseWriter.Write(png)
}
