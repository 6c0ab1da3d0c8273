package handler

import (
	"alarmclock/internal/application/dto"
	"alarmclock/internal/application/service"
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/infrastructure/line"
	"alarmclock/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

const lineHowToUse = `Commands:
status - show all alarms
stop - silence the ringtone
clear <precise|inexact|window|repeating> - cancel an alarm
help - show this message`

// LineHandler handles incoming LINE webhook events.
type LineHandler struct {
	lineClient *line.Client
	precise    service.PreciseAlarmService
	inexact    service.InexactAlarmService
	dispatcher service.AlarmDispatcher
	display    dto.DisplayOptions
	log        logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(
	lineClient *line.Client,
	precise service.PreciseAlarmService,
	inexact service.InexactAlarmService,
	dispatcher service.AlarmDispatcher,
	display dto.DisplayOptions,
	log logger.Logger,
) *LineHandler {
	return &LineHandler{
		lineClient: lineClient,
		precise:    precise,
		inexact:    inexact,
		dispatcher: dispatcher,
		display:    display,
		log:        log.With("line"),
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		h.log.Debug(fmt.Sprintf("Processing event type: %s", event.Type))
		switch event.Type {
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		case linebot.EventTypeFollow:
			h.reply(event.ReplyToken, howToUseMessage())
		default:
			h.log.Debug(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}

	return c.String(http.StatusOK, "OK")
}

func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Debug("Received non-text message")
		return
	}
	h.reply(event.ReplyToken, linebot.NewTextMessage(h.Execute(ctx, message.Text)))
}

// Execute runs one chat command and returns the reply text.
func (h *LineHandler) Execute(ctx context.Context, text string) string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return lineHowToUse
	}

	switch fields[0] {
	case "status":
		return h.statusText()
	case "stop":
		if h.dispatcher.StopRingtone() {
			return "Ringtone stopped."
		}
		return "Nothing is ringing."
	case "clear":
		if len(fields) < 2 {
			return "Which alarm? clear <precise|inexact|window|repeating>"
		}
		kind, ok := constant.ParseKind(fields[1])
		if !ok {
			return fmt.Sprintf("Unknown alarm %q.", fields[1])
		}
		if err := h.clear(ctx, kind); err != nil {
			h.log.Error(fmt.Sprintf("Failed to clear %s alarm from chat", kind), err)
			return fmt.Sprintf("Failed to clear the %s alarm.", kind)
		}
		return fmt.Sprintf("The %s alarm is cleared.", kind)
	default:
		return lineHowToUse
	}
}

func (h *LineHandler) clear(ctx context.Context, kind constant.AlarmKind) error {
	switch kind {
	case constant.KindPrecise:
		return h.precise.ClearPreciseAlarm(ctx)
	case constant.KindInexact:
		return h.inexact.ClearInexactAlarm(ctx)
	case constant.KindWindow:
		return h.inexact.ClearWindowAlarm(ctx)
	default:
		return h.inexact.ClearRepeatingAlarm(ctx)
	}
}

func (h *LineHandler) statusText() string {
	alarms := []dto.AlarmResponse{
		dto.ToPreciseResponse(h.precise.GetPreciseAlarmState().Get(), h.display),
		dto.ToInexactResponse(h.inexact.GetInexactAlarmState().Get(), h.display),
		dto.ToWindowResponse(h.inexact.GetWindowAlarmState().Get(), h.display),
		dto.ToRepeatingResponse(h.inexact.GetRepeatingAlarmState().Get(), h.display),
	}
	var builder strings.Builder
	for _, a := range alarms {
		if a.Set {
			builder.WriteString(fmt.Sprintf("%s: %s\n", a.Kind, a.Display))
		} else {
			builder.WriteString(fmt.Sprintf("%s: not set\n", a.Kind))
		}
	}
	if h.dispatcher.IsRinging() {
		builder.WriteString("Ringtone is playing.")
	}
	return strings.TrimSuffix(builder.String(), "\n")
}

func howToUseMessage() linebot.SendingMessage {
	quickReply := linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", linebot.NewMessageAction("status", "status")),
		linebot.NewQuickReplyButton("", linebot.NewMessageAction("stop", "stop")),
	)
	return linebot.NewTextMessage(lineHowToUse).WithQuickReplies(quickReply)
}

func (h *LineHandler) reply(replyToken string, messages ...linebot.SendingMessage) {
	if err := h.lineClient.SendMessages(replyToken, messages...); err != nil {
		h.log.Error("Failed to send LINE reply", err)
	}
}
