package utils

import (
	"log"
	"time"

	"github.com/LeinadCybre1024/LandRegistry/config"

	"github.com/go-resty/resty/v2"
)

// TransferEvent mirrors the payload the revenue department service
// expects for an ownership change.
type TransferEvent struct {
	PropertyID uint   `json:"propertyId"`
	PlotNumber string `json:"plotNumber"`
	FromWallet string `json:"fromWallet"`
	ToWallet   string `json:"toWallet"`
	TxHash     string `json:"txHash"`
}

// VerificationEvent notifies the peer of a verification decision.
type VerificationEvent struct {
	PropertyID uint   `json:"propertyId"`
	PlotNumber string `json:"plotNumber"`
	Status     string `json:"status"`
	VerifiedBy string `json:"verifiedBy"`
}

// NotifyTransfer posts a transfer event to the revenue department peer.
// Best effort: failures are logged, never surfaced to the client. Callers
// run it in a goroutine after the local transaction commits.
func NotifyTransfer(event TransferEvent) {
	postEvent("/sync/transfers", event)
}

// NotifyVerification posts a verification event to the revenue department peer.
func NotifyVerification(event VerificationEvent) {
	postEvent("/sync/verifications", event)
}

func postEvent(path string, body interface{}) {
	baseURL := config.AppConfig.RegistrySyncURL
	if baseURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(baseURL + path)
	if err != nil {
		log.Printf("[REGISTRY-SYNC] Error posting to %s: %v", path, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("[REGISTRY-SYNC] Peer rejected %s: %d %s", path, resp.StatusCode(), resp.String())
		return
	}

	log.Printf("[REGISTRY-SYNC] Synced %s to revenue department service", path)
}
