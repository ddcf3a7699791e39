package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/pkg/mailer"
	mailtpl "github.com/oksasatya/catalog-favorites/pkg/mailer/templates"
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// outcome says what to do with a delivery.
type outcome int

const (
	ack outcome = iota
	drop
	requeue
)

type worker struct {
	mail   sender
	logger *logrus.Logger
}

// handle decodes, renders and sends one job. Malformed or unrenderable jobs
// are dropped; send failures are requeued.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.WithError(err).Warn("bad message")
		return drop
	}
	job.Normalize()
	if job.To == "" {
		w.logger.Warn("job without recipient")
		return drop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			w.logger.WithError(err).WithField("template", job.Template).Warn("render failed")
			return drop
		}
		subject, text, html = s, t, h
	}
	if subject == "" || (text == "" && html == "") {
		w.logger.WithError(errors.New("empty email")).WithField("to", job.To).Warn("nothing to send")
		return drop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.mail.Send(c, job.To, subject, text, html); err != nil {
		w.logger.WithError(err).WithField("to", job.To).Warn("send failed")
		return requeue
	}
	w.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return ack
}
