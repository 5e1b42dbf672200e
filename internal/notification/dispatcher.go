package notification

import "log"

// Sender delivers one rendered message. Implemented by the SMTP mailer.
type Sender interface {
	Send(toName, toEmail, subject, html string) error
}

// Dispatcher fans a transition event out to role-appropriate recipients.
// Delivery failures are logged and swallowed: a lost email never fails or
// rolls back the committed transition.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(s Sender) *Dispatcher { return &Dispatcher{sender: s} }

func (d *Dispatcher) Dispatch(ev Event) {
	switch ev.Kind {
	case KindSubmitted:
		d.each(ev.Coordinators, func(r Recipient) (string, string, error) {
			return submissionMail(ev, r.Name)
		})
	case KindResubmitted:
		d.each(ev.Coordinators, func(r Recipient) (string, string, error) {
			return resubmissionMail(ev, r.Name)
		})
	case KindStatusChanged:
		if ev.Submitter.Email != "" {
			d.send(ev.Submitter, func(r Recipient) (string, string, error) {
				return statusMail(ev, r.Name, false)
			})
		}
		d.each(ev.NextReviewers, func(r Recipient) (string, string, error) {
			return statusMail(ev, r.Name, true)
		})
		d.each(ev.PriorApprovers, func(r Recipient) (string, string, error) {
			return statusMail(ev, r.Name, false)
		})
	}
}

func (d *Dispatcher) each(rs []Recipient, build func(Recipient) (string, string, error)) {
	for _, r := range rs {
		if r.Email == "" {
			continue
		}
		d.send(r, build)
	}
}

func (d *Dispatcher) send(r Recipient, build func(Recipient) (string, string, error)) {
	subject, body, err := build(r)
	if err != nil {
		log.Printf("notification: render for %s failed: %v", r.Email, err)
		return
	}
	if err := d.sender.Send(r.Name, r.Email, subject, body); err != nil {
		log.Printf("notification: send to %s failed: %v", r.Email, err)
	}
}
