package router

import (
	"fmt"
	"net/http"

	"github.com/pay2post/pay2post/internal/middlewares"
	"github.com/pay2post/pay2post/internal/models"
)

// GetOrders returns the submitter's orders with their payment statuses.
func GetOrders(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	submitter := middlewares.GetSubmitterFromContext(w, r)

	orders, err := (*orderService).GetOrders(r.Context(), submitter.ID)

	if err != nil {
		http.Error(w, fmt.Sprintf("Error occurred during getting orders: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middlewares.EncodeJSONResponse(w, orders)
}
