package payments

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	config "github.com/startovate/lms_platform/configs"
)

const stripeAPIBase = "https://api.stripe.com/v1"

type CheckoutSession struct {
	ID            string `json:"id"`
	ClientSecret  string `json:"client_secret"`
	Status        string `json:"status"`
	CustomerEmail string
}

type sessionResponse struct {
	ID              string `json:"id"`
	ClientSecret    string `json:"client_secret"`
	Status          string `json:"status"`
	CustomerDetails *struct {
		Email string `json:"email"`
	} `json:"customer_details"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func client() *resty.Client {
	return resty.New().
		SetBaseURL(stripeAPIBase).
		SetBasicAuth(config.Config("STRIPE_SECRET_KEY"), "")
}

// amountInCents converts a course price to the integer minor unit Stripe
// expects. Rounded, not truncated: 19.99 stored as a float is fractionally
// below 1999 cents.
func amountInCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateCheckoutSession opens an embedded-mode checkout session priced inline
// for a single course.
func CreateCheckoutSession(courseTitle string, price float64) (*CheckoutSession, error) {
	returnURL := config.Config("FRONTEND_URL") + "/return?session_id={CHECKOUT_SESSION_ID}"
	amountCents := amountInCents(price)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("ui_mode", "embedded")
	form.Set("return_url", returnURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", courseTitle)

	var out sessionResponse
	resp, err := client().R().
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody(form.Encode()).
		SetResult(&out).
		SetError(&out).
		Post("/checkout/sessions")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		if out.Error != nil {
			return nil, fmt.Errorf("stripe session create failed: %s", out.Error.Message)
		}
		return nil, fmt.Errorf("stripe session create failed, status: %s", resp.Status())
	}

	return &CheckoutSession{ID: out.ID, ClientSecret: out.ClientSecret, Status: out.Status}, nil
}

func RetrieveCheckoutSession(sessionID string) (*CheckoutSession, error) {
	var out sessionResponse
	resp, err := client().R().
		SetResult(&out).
		SetError(&out).
		Get("/checkout/sessions/" + url.PathEscape(sessionID))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		if out.Error != nil {
			return nil, fmt.Errorf("stripe session retrieve failed: %s", out.Error.Message)
		}
		return nil, fmt.Errorf("stripe session retrieve failed, status: %s", resp.Status())
	}

	session := &CheckoutSession{ID: out.ID, ClientSecret: out.ClientSecret, Status: out.Status}
	if out.CustomerDetails != nil {
		session.CustomerEmail = out.CustomerDetails.Email
	}
	return session, nil
}
