package ports

import "context"

// Attachment adjunto binario de un correo (ej. PDF de orden de compra).
type Attachment struct {
	Filename string
	Content  []byte
}

// Message correo saliente.
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer colaborador de correo saliente. Los envíos en rutas críticas se
// esperan; los best-effort los decide el caller.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
