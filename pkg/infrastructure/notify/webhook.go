package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/events"
)

// Config holds the webhook endpoints. An empty URL disables that notification.
type Config struct {
	ContractApprovalURL string
	ChecklistWebhookURL string
	ApprovalBaseURL     string
	Timeout             time.Duration
}

// WebhookNotifier forwards approval events to the configured automation
// webhooks. Delivery failures are logged and never returned to the publisher.
type WebhookNotifier struct {
	config Config
	client *http.Client
}

var _ events.EventHandler = (*WebhookNotifier)(nil)

func NewWebhookNotifier(config Config) *WebhookNotifier {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

// EventTypes lists the events the notifier subscribes to
func (n *WebhookNotifier) EventTypes() []string {
	return []string{
		events.ContractSubmittedEvent,
		events.ChecklistSubmittedEvent,
		events.ChecklistDecidedEvent,
	}
}

func (n *WebhookNotifier) CanHandle(eventType string) bool {
	for _, t := range n.EventTypes() {
		if t == eventType {
			return true
		}
	}
	return false
}

func (n *WebhookNotifier) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.ContractSubmitted:
		n.deliver(n.config.ContractApprovalURL, "contract approval", n.contractPayload(data))
	case events.ChecklistSubmitted:
		n.deliver(n.config.ChecklistWebhookURL, "checklist submission", checklistSubmittedPayload{
			Action:      "novo_checklist",
			SiteID:      data.SiteID,
			ChecklistID: data.ChecklistID,
			DocumentURL: data.DocumentURL,
		})
	case events.ChecklistDecided:
		n.deliver(n.config.ChecklistWebhookURL, "checklist decision", checklistDecidedPayload{
			SiteID:      data.SiteID,
			ChecklistID: data.ChecklistID,
			Status:      data.Status,
			DocumentURL: data.DocumentURL,
		})
	default:
		return fmt.Errorf("unexpected payload %T for event %s", event.Data(), event.Type())
	}
	return nil
}

type contractApprovalPayload struct {
	ContractID    string `json:"contratoId"`
	Supplier      string `json:"fornecedor"`
	Number        string `json:"numeroContrato"`
	TotalValue    string `json:"valorTotal"`
	ApproverEmail string `json:"aprovadorEmail"`
	ApproverName  string `json:"aprovadorNome"`
	ApprovalLink  string `json:"approvalLink"`
	Kind          string `json:"tipo"`
}

type checklistSubmittedPayload struct {
	Action      string `json:"acao"`
	SiteID      string `json:"obraId"`
	ChecklistID string `json:"checklistId"`
	DocumentURL string `json:"pdfUrl"`
}

type checklistDecidedPayload struct {
	SiteID      string `json:"obraId"`
	ChecklistID string `json:"checklistId"`
	Status      string `json:"status"`
	DocumentURL string `json:"pdfUrl"`
}

func (n *WebhookNotifier) contractPayload(data events.ContractSubmitted) contractApprovalPayload {
	kind := "Contrato"
	if data.Kind == "amendment" {
		kind = "Aditivo"
	}
	return contractApprovalPayload{
		ContractID:    data.ContractID,
		Supplier:      data.Supplier,
		Number:        data.Number,
		TotalValue:    FormatBRL(data.TotalValue),
		ApproverEmail: data.Approver.Email,
		ApproverName:  data.Approver.Name,
		ApprovalLink:  ApprovalLink(n.config.ApprovalBaseURL, data.ApprovalToken, data.ContractID),
		Kind:          kind,
	}
}

// ApprovalLink builds the link the approver follows to decide a contract
func ApprovalLink(baseURL, token, contractID string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("contratoId", contractID)
	return strings.TrimRight(baseURL, "/") + "/aprovar-contrato?" + q.Encode()
}

func (n *WebhookNotifier) deliver(target, what string, payload any) {
	if target == "" {
		log.Printf("notify: %s webhook not configured, skipping", what)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: failed to encode %s payload: %v", what, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		log.Printf("notify: failed to build %s request: %v", what, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		log.Printf("notify: %s webhook failed: %v", what, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("notify: %s webhook returned status %d", what, resp.StatusCode)
	}
}

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.234,56"
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	return fmt.Sprintf("%sR$ %s,%s", sign, grouped.String(), frac)
}
