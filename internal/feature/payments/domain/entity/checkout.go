package entity

// CheckoutRequest は決済プロバイダーに渡すセッション作成要求です。
type CheckoutRequest struct {
	Amount         int64
	Currency       string
	ProductName    string
	SuccessURL     string
	CancelURL      string
	WebhookURL     string
	CustomerEmail  string
	IdempotencyKey string
	Metadata       map[string]string
}

// CheckoutSession はプロバイダーが作成したセッションです。
type CheckoutSession struct {
	ID  string
	URL string
}

// プロバイダー側のセッション状態。
const (
	CheckoutOpen     = "open"
	CheckoutComplete = "complete"
	CheckoutExpired  = "expired"
)

// CheckoutStatus はプロバイダーから取得したセッションの状態です。
type CheckoutStatus struct {
	SessionID     string
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
}

// Paid は支払い済みかどうかを返します。
func (s *CheckoutStatus) Paid() bool {
	return s.PaymentStatus == string(PaymentPaid)
}

// WebhookEvent は署名検証済みのWebhookイベントです。
type WebhookEvent struct {
	ID        string
	Type      string
	SessionID string
}
