package mailer

// Mailer ties template rendering and background delivery together.
type Mailer struct {
	renderer   *Renderer
	dispatcher *Dispatcher
}

// New builds a Mailer around a renderer and a started dispatcher.
func New(renderer *Renderer, dispatcher *Dispatcher) *Mailer {
	return &Mailer{renderer: renderer, dispatcher: dispatcher}
}

// Dispatch hands a composed email to the background worker.
func (m *Mailer) Dispatch(email *Email) {
	m.dispatcher.Enqueue(email)
}

// Close drains the delivery queue.
func (m *Mailer) Close() {
	m.dispatcher.Close()
}
