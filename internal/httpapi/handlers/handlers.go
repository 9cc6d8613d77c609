/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pricecart/pricecart/pkg/basket"
	"github.com/pricecart/pricecart/pkg/config"
	"github.com/pricecart/pricecart/pkg/money"
	"github.com/pricecart/pricecart/pkg/search"
	"github.com/pricecart/pricecart/pkg/session"
	"github.com/pricecart/pricecart/pkg/types"
)

// Handlers exposes the state layer to the UI: search, last result, basket
// mutations, the basket stream and logout. These are the only entry points
// presentation code may call.
type Handlers struct {
	config  *config.AppConfig
	search  *search.Cache
	basket  *basket.Store
	session *session.Session
}

func NewHandlers(cfg *config.AppConfig, searchCache *search.Cache, basketStore *basket.Store, sess *session.Session) *Handlers {
	return &Handlers{
		config:  cfg,
		search:  searchCache,
		basket:  basketStore,
		session: sess,
	}
}

// Search resolves a free-text query through the cache. Collaborator
// failures surface as 502; blank queries are valid and return the empty
// payload.
func (h *Handlers) Search(c *gin.Context) {
	query := c.Query("q")

	payload, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		logrus.WithField("query", query).WithError(err).Error("search failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "search backend unavailable"})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// LastSearch returns the most recent successful search of this process,
// or 404 when none has completed yet.
func (h *Handlers) LastSearch(c *gin.Context) {
	payload, ok := h.search.LastResult()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no search has completed yet"})
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *Handlers) GetBasket(c *gin.Context) {
	c.JSON(http.StatusOK, h.basket.Items())
}

// AddBasketItemRequest carries the fields of a new basket line. Price is
// the retailer's free text; it is parsed leniently so a malformed price
// never blocks the add.
type AddBasketItemRequest struct {
	Title    string `json:"title" binding:"required"`
	Price    string `json:"price"`
	Market   string `json:"market" binding:"required"`
	Quantity int    `json:"quantity"`
}

func (h *Handlers) AddBasketItem(c *gin.Context) {
	var req AddBasketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	h.basket.Add(c.Request.Context(), basket.NewItem{
		Title:     req.Title,
		UnitPrice: money.ParsePrice(req.Price),
		Market:    req.Market,
	}, quantity)

	c.JSON(http.StatusCreated, h.basket.Items())
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateBasketItem sets the quantity of one line. An unknown id is a
// no-op, mirrored here as a 200 with the unchanged sequence.
func (h *Handlers) UpdateBasketItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.basket.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, h.basket.Items())
}

func (h *Handlers) RemoveBasketItem(c *gin.Context) {
	h.basket.Remove(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.basket.Items())
}

func (h *Handlers) ClearBasket(c *gin.Context) {
	h.basket.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// BasketStream pushes the basket sequence to the client as server-sent
// events: the current state on connect, then one event per mutation. A
// slow client may miss intermediate states but always converges on the
// latest one.
func (h *Handlers) BasketStream(c *gin.Context) {
	updates := make(chan []types.BasketItem, 64)
	unsubscribe := h.basket.Subscribe(func(items []types.BasketItem) {
		select {
		case updates <- items:
		default:
			// Client is not keeping up, skip this snapshot
		}
	})
	defer unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case items := <-updates:
			c.SSEvent("basket", items)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Logout ends the session: the user record, search cache table and basket
// table are all erased. The live basket is cleared first so subscribers
// observe the emptied sequence.
func (h *Handlers) Logout(c *gin.Context) {
	h.basket.Clear(c.Request.Context())
	if err := h.session.Logout(c.Request.Context()); err != nil {
		logrus.WithError(err).Error("logout failed to erase persisted tables")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to erase session data"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SessionStatus reports whether a session is active and, when it is, the
// stored user record.
func (h *Handlers) SessionStatus(c *gin.Context) {
	user, found := h.session.CurrentUser(c.Request.Context())
	if !found {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "user": user})
}
