package utils

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

//RLHTTPClient Rate Limited HTTP Client
type RLHTTPClient struct {
	client      *http.Client
	RateLimiter *rate.Limiter
}

//Do waits for the limiter, then dispatches the HTTP request to the network.
//The wait honors the request context, so a cancelled request never reaches the backend.
func (c *RLHTTPClient) Do(req *http.Request, activationCallback func()) (*http.Response, error) {
	err := c.RateLimiter.Wait(req.Context()) // This is a blocking call. Honors the rate limit
	if err != nil {
		return nil, err
	}
	if activationCallback != nil {
		activationCallback()
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

//NewRateLimitedClient return http client with a rateLimiter.
//A zero timeout leaves requests unbounded.
func NewRateLimitedClient(rl *rate.Limiter, timeout time.Duration) *RLHTTPClient {
	c := &RLHTTPClient{
		client:      &http.Client{Timeout: timeout},
		RateLimiter: rl,
	}
	return c
}

//NewLimiter builds the limiter for perSecond requests with the given burst.
//A non-positive rate disables throttling.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
