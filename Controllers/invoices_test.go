package Controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInvoices(t *testing.T) {
	app := setupApp(t)
	cookie := loginAdmin(t, app)

	doJSON(t, app, "POST", "/api/vehicles/entry/INV001", `{"vehicle_type":"car"}`, cookie)
	doJSON(t, app, "PUT", "/api/vehicles/exit/INV001", "", cookie)
	doJSON(t, app, "POST", "/api/vehicles/entry/INV002", `{"vehicle_type":"motorcycle"}`, cookie)

	resp, payload := doJSON(t, app, "GET", "/api/invoices/", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	invoices := payload["invoices"].([]interface{})
	require.Len(t, invoices, 2)

	// Closed invoice carries the fee, open one is still zero.
	first := invoices[0].(map[string]interface{})
	second := invoices[1].(map[string]interface{})
	assert.Equal(t, float64(3000), first["total_amount"])
	assert.Equal(t, float64(0), second["total_amount"])

	// Date filter for today matches both; a past date matches none.
	today := time.Now().Format("2006-01-02")
	resp, payload = doJSON(t, app, "GET", "/api/invoices/?date="+today, "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["invoices"].([]interface{}), 2)

	resp, payload = doJSON(t, app, "GET", "/api/invoices/?date=2020-01-01", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, payload["invoices"])

	resp, _ = doJSON(t, app, "GET", "/api/invoices/?date=bogus", "", cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetInvoiceByNumber(t *testing.T) {
	app := setupApp(t)
	cookie := loginAdmin(t, app)

	_, entry := doJSON(t, app, "POST", "/api/vehicles/entry/INV100", `{"vehicle_type":"car"}`, cookie)
	number := vehicleOf(t, entry)["invoice_number"].(string)

	resp, payload := doJSON(t, app, "GET", "/api/invoices/"+number, "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, number, payload["invoice_number"])
	vehicle := payload["vehicle"].(map[string]interface{})
	assert.Equal(t, "INV100", vehicle["license_plate"])

	resp, _ = doJSON(t, app, "GET", "/api/invoices/209901010001", "", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDailyReport(t *testing.T) {
	app := setupApp(t)
	cookie := loginAdmin(t, app)

	doJSON(t, app, "POST", "/api/vehicles/entry/REP001", `{"vehicle_type":"car"}`, cookie)
	doJSON(t, app, "PUT", "/api/vehicles/exit/REP001", "", cookie)

	resp, _ := doJSON(t, app, "GET", "/api/invoices/report", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp, _ = doJSON(t, app, "GET", "/api/invoices/report?date=bogus", "", cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
