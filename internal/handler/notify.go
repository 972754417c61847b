package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/email"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
)

// NotifyHandler serves the answer-notification function.
type NotifyHandler struct {
	Sender  email.Sender
	SiteURL string
}

func NewNotifyHandler(sender email.Sender, siteURL string) *NotifyHandler {
	return &NotifyHandler{Sender: sender, SiteURL: strings.TrimRight(siteURL, "/")}
}

type answerNotificationReq struct {
	QuestionTitle       string `json:"questionTitle"`
	QuestionSlug        string `json:"questionSlug"`
	QuestionAuthorEmail string `json:"questionAuthorEmail"`
	QuestionAuthorName  string `json:"questionAuthorName"`
	AnswerAuthor        string `json:"answerAuthor"`
	AnswerContent       string `json:"answerContent"`
}

// SendAnswerNotification handles POST /functions/send-answer-notification.
// One send attempt per call.
func (h *NotifyHandler) SendAnswerNotification(c echo.Context) error {
	var req answerNotificationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.QuestionTitle) == "" || strings.TrimSpace(req.QuestionSlug) == "" ||
		strings.TrimSpace(req.QuestionAuthorEmail) == "" {
		return badRequest(c, "Missing required fields")
	}

	subject, html, text, err := email.RenderAnswerNotification(email.AnswerNotification{
		QuestionTitle:      req.QuestionTitle,
		QuestionAuthorName: req.QuestionAuthorName,
		AnswerAuthor:       req.AnswerAuthor,
		AnswerContent:      req.AnswerContent,
		QuestionURL:        h.SiteURL + "/community/" + url.PathEscape(req.QuestionSlug),
	})
	if err != nil {
		logger.Get().Error("render answer notification", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to render email", "details": err.Error()})
	}

	id, err := h.Sender.Send(c.Request().Context(), email.Message{
		To:      []string{req.QuestionAuthorEmail},
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Get().Error("send answer notification", zap.String("slug", req.QuestionSlug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send email", "details": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "messageId": id})
}
