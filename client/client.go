// Package client is a typed HTTP client for the food-ordering API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"food-ordering-api/models"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	})
}

func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

// Token returns the token stored by the last successful Login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type MealInput struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description *string  `json:"description"`
	Options     []string `json:"options"`
	CategoryID  uint     `json:"category_id"`
}

type OrderInput struct {
	CustomerName string            `json:"customerName"`
	Items        []models.CartLine `json:"items"`
	TotalPrice   float64           `json:"totalPrice"`
}

type Identity struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Data []models.Category `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, false, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListMeals lists the menu; a nil categoryID lists every meal.
func (c *Client) ListMeals(ctx context.Context, categoryID *uint) ([]models.Meal, error) {
	path := "/api/meals"
	if categoryID != nil {
		path += "?" + url.Values{"category_id": {strconv.FormatUint(uint64(*categoryID), 10)}}.Encode()
	}
	var out struct {
		Data []models.Meal `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, false, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) PlaceOrder(ctx context.Context, order OrderInput) (uint, error) {
	var out struct {
		OrderID uint `json:"orderId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", order, false, &out); err != nil {
		return 0, err
	}
	return out.OrderID, nil
}

// Login authenticates and keeps the token for subsequent admin calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, false, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var out struct {
		Data Identity `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/me", nil, true, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) AdminOrders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Data []models.Order `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", nil, true, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateMeal(ctx context.Context, meal MealInput) (uint, error) {
	var out struct {
		MealID uint `json:"mealId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/meals", meal, true, &out); err != nil {
		return 0, err
	}
	return out.MealID, nil
}

func (c *Client) UpdateMeal(ctx context.Context, id uint, meal MealInput) error {
	return c.do(ctx, http.MethodPut, "/api/admin/meals/"+strconv.FormatUint(uint64(id), 10), meal, true, nil)
}

func (c *Client) DeleteMeal(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/meals/"+strconv.FormatUint(uint64(id), 10), nil, true, nil)
}

func (c *Client) CreateCategory(ctx context.Context, name string) (uint, error) {
	var out struct {
		CategoryID uint `json:"categoryId"`
	}
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/admin/categories", body, true, &out); err != nil {
		return 0, err
	}
	return out.CategoryID, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/categories/"+strconv.FormatUint(uint64(id), 10), nil, true, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
