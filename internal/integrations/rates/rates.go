package rates

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/corebank/finance-service/internal/config"
	"github.com/sirupsen/logrus"
)

// Client fetches daily exchange rates from the central bank SOAP endpoint.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildSOAPRequest creates a SOAP request for the given date's rates
func (c *Client) buildSOAPRequest(onDate time.Time) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<GetCursOnDate xmlns="http://web.cbr.ru/">
					<On_date>%s</On_date>
				</GetCursOnDate>
			</soap12:Body>
		</soap12:Envelope>`, onDate.Format("2006-01-02"))
}

// sendRequest sends the SOAP request to the rates endpoint
func (c *Client) sendRequest(soapRequest string) ([]byte, error) {
	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer([]byte(soapRequest)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/GetCursOnDate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Rates XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts per-currency rates from the XML body, keyed by
// ISO code. Currencies outside wanted are skipped; pass nil to keep all.
func (c *Client) parseXMLResponse(rawBody []byte, wanted map[string]bool) (map[string]float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	rows := doc.FindElements("//ValuteData/ValuteCursOnDate")
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	out := map[string]float64{}
	for _, row := range rows {
		codeEl := row.FindElement("./VchCode")
		rateEl := row.FindElement("./Vcurs")
		if codeEl == nil || rateEl == nil {
			continue
		}
		code := codeEl.Text()
		if wanted != nil && !wanted[code] {
			continue
		}
		var rate float64
		if _, err := fmt.Sscanf(rateEl.Text(), "%f", &rate); err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", code, err)
		}
		out[code] = rate
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no matching currencies in rate data")
	}

	return out, nil
}

// GetDailyRates retrieves today's exchange rates for the given ISO currency
// codes. An empty codes slice returns every published currency.
func (c *Client) GetDailyRates(codes []string) (map[string]float64, error) {
	soapRequest := c.buildSOAPRequest(time.Now())
	body, err := c.sendRequest(soapRequest)
	if err != nil {
		return nil, err
	}

	var wanted map[string]bool
	if len(codes) > 0 {
		wanted = map[string]bool{}
		for _, code := range codes {
			wanted[code] = true
		}
	}

	out, err := c.parseXMLResponse(body, wanted)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved %d exchange rates", len(out))
	return out, nil
}
