// Package gateway delivers verification codes to account contact addresses.
package gateway

import (
	"context"
	"fmt"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/instrument"
	"github.com/rahmatfadli/goverify/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Gateway fans out code delivery to the SMS provider or SMTP, depending on
// the challenge channel. Any provider failure surfaces as an error so the
// caller can keep challenge state untouched.
type Gateway struct {
	sms  *SMSClient
	mail mail.Mail
	ins  instrument.Instrumentation
}

func NewGateway(sms *SMSClient, m mail.Mail, ins instrument.Instrumentation) *Gateway {
	return &Gateway{
		sms:  sms,
		mail: m,
		ins:  ins,
	}
}

func (g *Gateway) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return g.ins.Tracer("auth.outbound.gateway").Start(ctx, name)
}

func (g *Gateway) SendCode(ctx context.Context, ch entity.Channel, address, code string) error {
	ctx, span := g.startSpan(ctx, "SendCode")
	defer span.End()

	var err error
	switch ch {
	case entity.ChannelPhone:
		err = g.sms.SendOTP(ctx, address, code)
	case entity.ChannelEmail:
		err = g.mail.Send(ctx, mail.Message{
			To:       []string{address},
			Subject:  "Your verification code",
			TextBody: "Your verification code is " + code + ". It expires in 5 minutes.",
		})
	default:
		err = fmt.Errorf("gateway: unsupported channel %d", ch)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
