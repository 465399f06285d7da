package handlers

import (
	"github.com/natashawa225/sea-catering/internal/app/service/pricing"
	"github.com/natashawa225/sea-catering/internal/app/service/statistics"
	subsvc "github.com/natashawa225/sea-catering/internal/app/service/subscription"
	"github.com/natashawa225/sea-catering/internal/models"
	"github.com/natashawa225/sea-catering/pkg/response"
	"github.com/natashawa225/sea-catering/pkg/types"
)

// Envelope types below only exist for the generated API docs.

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

type RespHealth struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    HealthStatus             `json:"data"`
}

type RespPlans struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []types.Plan             `json:"data"`
}

type RespQuote struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    pricing.Quote            `json:"data"`
}

type RespSubscription struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Subscription      `json:"data"`
}

// SubscriptionList is the tagged read result; kind is ok, empty or unavailable.
type SubscriptionList struct {
	Kind types.ResultKind      `json:"kind"`
	Data []models.Subscription `json:"data"`
}

type RespSubscriptions struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    SubscriptionList         `json:"data"`
}

type RespScan struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    subsvc.ScanResponse      `json:"data"`
}

type RespTestimonial struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Testimonial       `json:"data"`
}

type TestimonialList struct {
	Kind types.ResultKind     `json:"kind"`
	Data []models.Testimonial `json:"data"`
}

type RespTestimonials struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    TestimonialList          `json:"data"`
}

type AdminMetricsResult struct {
	Kind types.ResultKind        `json:"kind"`
	Data statistics.AdminMetrics `json:"data"`
}

type RespAdminMetrics struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    AdminMetricsResult       `json:"data"`
}

type RespMe struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    MeResponse               `json:"data"`
}
