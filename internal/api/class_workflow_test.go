package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCompletingClassOverHTTPCreatesSinglePayment(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "teacher@example.com")
	fixture := createTeachingFixture(t, app, cookie)

	created := doJSON(t, app, http.MethodPost, "/api/classes", fiber.Map{
		"student_id":       fixture.studentID,
		"contractor_id":    fixture.contractorID,
		"start_time":       "2024-01-01T10:00:00Z",
		"duration_minutes": 60,
	}, cookie)
	require.Equal(t, http.StatusCreated, created.status, created.body)
	class := objectField(t, created.body, "class")
	require.Equal(t, "scheduled", class["status"])
	require.Equal(t, "2024-01-01T11:00:00Z", class["end_time"])
	classID := class["id"].(string)

	statusPath := fmt.Sprintf("/api/classes/%s/status", classID)
	completed := doJSON(t, app, http.MethodPatch, statusPath, fiber.Map{"status": "completed", "class_notes": "done"}, cookie)
	require.Equal(t, http.StatusOK, completed.status, completed.body)
	require.Equal(t, true, completed.body["payment_created"])
	payment := objectField(t, completed.body, "payment")
	require.Equal(t, "50", payment["amount"])
	require.Equal(t, "BRL", payment["currency"])
	require.Equal(t, "pending", payment["status"])
	require.Equal(t, classID, payment["class_id"])

	again := doJSON(t, app, http.MethodPatch, statusPath, fiber.Map{"status": "completed"}, cookie)
	require.Equal(t, http.StatusOK, again.status)
	require.Equal(t, false, again.body["payment_created"])
	require.Equal(t, payment["id"], objectField(t, again.body, "payment")["id"])

	payments := doJSON(t, app, http.MethodGet, "/api/payments", nil, cookie)
	require.Equal(t, http.StatusOK, payments.status)
	require.Len(t, listField(t, payments.body, "payments"), 1)
}

func TestCrossTenantAccessLooksLikeMissingRecord(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerTestUser(t, app, "owner@example.com")
	stranger := registerTestUser(t, app, "stranger@example.com")
	fixture := createTeachingFixture(t, app, owner)

	created := doJSON(t, app, http.MethodPost, "/api/classes", fiber.Map{
		"student_id":    fixture.studentID,
		"contractor_id": fixture.contractorID,
		"start_time":    "2024-01-01T10:00:00Z",
	}, owner)
	require.Equal(t, http.StatusCreated, created.status)
	classID := objectField(t, created.body, "class")["id"].(string)

	hijack := doJSON(t, app, http.MethodPatch, "/api/classes/"+classID+"/status", fiber.Map{"status": "completed"}, stranger)
	require.Equal(t, http.StatusNotFound, hijack.status)
	require.Equal(t, "class not found", hijack.body["error"])

	read := doJSON(t, app, http.MethodGet, "/api/contractors/"+fixture.contractorID, nil, stranger)
	require.Equal(t, http.StatusNotFound, read.status)

	borrowed := doJSON(t, app, http.MethodPost, "/api/classes", fiber.Map{
		"student_id":    fixture.studentID,
		"contractor_id": fixture.contractorID,
		"start_time":    "2024-01-01T10:00:00Z",
	}, stranger)
	require.Equal(t, http.StatusNotFound, borrowed.status)
	require.Equal(t, "student or contractor not found", borrowed.body["error"])

	ownerClass := doJSON(t, app, http.MethodGet, "/api/classes/"+classID, nil, owner)
	require.Equal(t, http.StatusOK, ownerClass.status)
	require.Equal(t, "scheduled", objectField(t, ownerClass.body, "class")["status"])

	strangerPayments := doJSON(t, app, http.MethodGet, "/api/payments", nil, stranger)
	require.Empty(t, listField(t, strangerPayments.body, "payments"))
	strangerClasses := doJSON(t, app, http.MethodGet, "/api/classes", nil, stranger)
	require.Empty(t, listField(t, strangerClasses.body, "classes"))
}

func TestDeleteContractorInUseReturnsConflict(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "teacher@example.com")
	fixture := createTeachingFixture(t, app, cookie)

	response := doJSON(t, app, http.MethodDelete, "/api/contractors/"+fixture.contractorID, nil, cookie)
	require.Equal(t, http.StatusConflict, response.status)
	require.Equal(t, "cannot delete contractor: has associated students (1)", response.body["error"])

	details := doJSON(t, app, http.MethodGet, "/api/contractors/"+fixture.contractorID, nil, cookie)
	require.Equal(t, http.StatusOK, details.status)
	require.EqualValues(t, 1, objectField(t, details.body, "counts")["students"])
}

func TestPaymentStatusAndSummaryOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "teacher@example.com")
	fixture := createTeachingFixture(t, app, cookie)

	created := doJSON(t, app, http.MethodPost, "/api/payments", fiber.Map{
		"student_id":    fixture.studentID,
		"contractor_id": fixture.contractorID,
		"amount":        "120.50",
		"due_date":      "2024-02-01",
	}, cookie)
	require.Equal(t, http.StatusCreated, created.status, created.body)
	paymentID := objectField(t, created.body, "payment")["id"].(string)

	received := doJSON(t, app, http.MethodPatch, "/api/payments/"+paymentID+"/status", fiber.Map{
		"status":        "received",
		"received_date": "2024-02-03",
	}, cookie)
	require.Equal(t, http.StatusOK, received.status, received.body)
	require.NotNil(t, objectField(t, received.body, "payment")["received_date"])

	summary := doJSON(t, app, http.MethodGet, "/api/summary?from=2024-02-01&to=2024-02-29", nil, cookie)
	require.Equal(t, http.StatusOK, summary.status, summary.body)
	totals := objectField(t, summary.body, "summary")
	require.Equal(t, "120.5", totals["total_received"])
	require.Len(t, listField(t, totals, "by_contractor"), 1)

	invalid := doJSON(t, app, http.MethodPatch, "/api/payments/"+paymentID+"/status", fiber.Map{"status": "lost"}, cookie)
	require.Equal(t, http.StatusBadRequest, invalid.status)

	dashboard := doJSON(t, app, http.MethodGet, "/api/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, dashboard.status)
	require.EqualValues(t, 1, objectField(t, dashboard.body, "dashboard")["active_students"])
}

func TestReceivedDayCountsInCallerTimezone(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUserInTimezone(t, app, "teacher@example.com", "America/Sao_Paulo")
	fixture := createTeachingFixture(t, app, cookie)

	created := doJSON(t, app, http.MethodPost, "/api/payments", fiber.Map{
		"student_id":    fixture.studentID,
		"contractor_id": fixture.contractorID,
		"amount":        "100",
		"due_date":      "2024-02-01",
	}, cookie)
	require.Equal(t, http.StatusCreated, created.status, created.body)
	paymentID := objectField(t, created.body, "payment")["id"].(string)

	received := doJSON(t, app, http.MethodPatch, "/api/payments/"+paymentID+"/status", fiber.Map{
		"status":        "received",
		"received_date": "2024-02-01",
	}, cookie)
	require.Equal(t, http.StatusOK, received.status, received.body)

	february := doJSON(t, app, http.MethodGet, "/api/summary?from=2024-02-01&to=2024-02-29", nil, cookie)
	require.Equal(t, http.StatusOK, february.status, february.body)
	require.Equal(t, "100", objectField(t, february.body, "summary")["total_received"])

	january := doJSON(t, app, http.MethodGet, "/api/summary?from=2024-01-01&to=2024-01-31", nil, cookie)
	require.Equal(t, http.StatusOK, january.status, january.body)
	require.Equal(t, "0", objectField(t, january.body, "summary")["total_received"])
}
