package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"slices"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// Attachment is an image part of an order submission.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// OrderForm carries the multipart fields of POST /api/orders.
type OrderForm struct {
	Address     string
	ScheduledAt time.Time
	// PromoCode is sent only when non-blank.
	PromoCode string
	Services  []model.ServiceID
	Images    []Attachment
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// ServicesJSON renders service ids as a compact ascending JSON array.
func ServicesJSON(ids []model.ServiceID) (string, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	raw := make([]int, 0, len(sorted))
	for _, id := range sorted {
		raw = append(raw, int(id))
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f OrderForm) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	services, err := ServicesJSON(f.Services)
	if err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"address", f.Address},
		{"scheduledDateTime", f.ScheduledAt.In(time.Local).Format(LocalDateTimeLayout)},
	}
	if code := strings.TrimSpace(f.PromoCode); code != "" {
		fields = append(fields, [2]string{"promoCode", code})
	}
	fields = append(fields, [2]string{"services", services})

	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", err
		}
	}

	for i, img := range f.Images {
		filename := img.Filename
		if filename == "" {
			filename = fmt.Sprintf("image_%d.jpg", i)
		}
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, quoteEscaper.Replace(filename)))
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// CreateOrder submits a new order. A 2xx reply without a usable order id
// yields ErrEmptyResponse so callers can decide how to degrade.
func (c *HTTPClient) CreateOrder(ctx context.Context, form OrderForm) (*model.Order, error) {
	payload, contentType, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("encode order form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/orders", nil, bytes.NewReader(payload), contentType)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp orderDetailsResponse
	if err := decode("/api/orders", body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrEmptyResponse, err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("/api/orders: %w", domainErrors.ErrEmptyResponse)
	}
	return resp.toModel(), nil
}
