package models

// PaymentStatus is the processor-reported state of an invoice. The processor
// has a richer vocabulary (waiting, confirming, partially_paid, expired, ...)
// but this service only acts on "finished"; everything else is still pending.
type PaymentStatus string

const PaymentStatusFinished PaymentStatus = "finished"

// Invoice is the processor's answer to an invoice-creation request: a hosted
// payment page and the identifier every later status query is keyed by.
type Invoice struct {
	ID  string
	URL string
}

// Submitter identifies the author of a submission, extracted from the
// front-end token. Username may be empty when the platform doesn't expose a
// public handle.
type Submitter struct {
	ID       string
	Username string
}
