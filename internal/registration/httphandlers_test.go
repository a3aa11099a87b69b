package registration

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"clinic-desk/internal/api"
	"clinic-desk/internal/auth"
	"clinic-desk/internal/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type emptyWriter struct{}

func (e emptyWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}

var logger = log.New(&emptyWriter{}, "", log.LstdFlags)

type mockAuthorizer struct {
	mockValidateToken        func(ctx context.Context, token string) (*auth.User, error)
	mockRefreshTokens        func(ctx context.Context, tokens auth.Tokens) (*auth.Tokens, error)
	mockGetAuthenticatedUser func(ctx context.Context) (auth.User, error)
}

func (m mockAuthorizer) ValidateToken(ctx context.Context, token string) (*auth.User, error) {
	return m.mockValidateToken(ctx, token)
}

func (m mockAuthorizer) RefreshTokens(ctx context.Context, tokens auth.Tokens) (*auth.Tokens, error) {
	return m.mockRefreshTokens(ctx, tokens)
}

func (m mockAuthorizer) GetAuthenticatedUser(ctx context.Context) (auth.User, error) {
	return m.mockGetAuthenticatedUser(ctx)
}

func mockReceptionistUser() *auth.User {
	empID := int64(2)
	return &auth.User{
		ID:       2,
		UUID:     uuid.UUID{},
		Username: "frontdesk",
		Role:     auth.ReceptionistRole,
		EmpID:    &empID,
	}
}

func mockAdminUser() *auth.User {
	empID := int64(1)
	return &auth.User{
		ID:       1,
		UUID:     uuid.UUID{},
		Username: "admin",
		Role:     auth.AdminRole,
		EmpID:    &empID,
	}
}

func mockAuthorizerFor(user *auth.User) mockAuthorizer {
	return mockAuthorizer{
		mockValidateToken: func(ctx context.Context, token string) (*auth.User, error) {
			return user, nil
		},
		mockGetAuthenticatedUser: func(ctx context.Context) (auth.User, error) {
			return *user, nil
		},
	}
}

func withBegin() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectBegin()
	}
}

func withCommit() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectCommit()
	}
}

func withRollback() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectRollback()
	}
}

func withFindPatientByPhoneResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findPatientByPhoneQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withFindPatientByIDResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(findPatientByIDQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withInsertPatientResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(insertPatientQuery)).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withInsertVisitResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(insertVisitQuery)).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withInsertVisitError() mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(insertVisitQuery)).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnError(sql.ErrConnDone)
	}
}

func withMarkAppointmentResult(result driver.Result) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(markAppointmentQuery)).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(result)
	}
}

func withListVisitsResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listVisitsQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withListVisitsByStatusResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listVisitsByStatusQuery)).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withListPatientVisitsResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(listPatientVisitsQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func withSearchPatientsResult(rows *sqlmock.Rows) mock.DBResultOption {
	return func(dbConn mock.Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(searchPatientsQuery)).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)
	}
}

func patientColumns() []string {
	return []string{"patient_id", "patient_name", "gender", "id_card", "phone"}
}

func visitColumns() []string {
	return []string{"visit_id", "patient_name", "dept_name", "room_name", "visit_time", "status", "doctor_name"}
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) api.Envelope {
	t.Helper()
	envelope := api.Envelope{}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("an error occurred while decoding the response envelope: %v", err)
	}
	return envelope
}

func TestRegisterVisit(t *testing.T) {
	apptID := int64(7)
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		registration  RegistrationRequest
	}
	tests := []struct {
		name        string
		args        args
		wantSuccess bool
	}{
		{
			name: "should register a visit for a known patient",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withBegin(),
					withFindPatientByPhoneResult(sqlmock.NewRows(patientColumns()).AddRow(5, "Alice Turner", "F", nil, "13800000001")),
					withInsertVisitResult(sqlmock.NewRows([]string{"visit_id"}).AddRow(9)),
					withCommit(),
				},
				registration: RegistrationRequest{
					PatientName: "Alice Turner",
					Phone:       "13800000001",
					DeptID:      1,
					RoomID:      1,
				},
			},
			wantSuccess: true,
		},
		{
			name: "should register a visit creating the patient first",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withBegin(),
					withFindPatientByPhoneResult(sqlmock.NewRows(patientColumns())),
					withInsertPatientResult(sqlmock.NewRows([]string{"patient_id"}).AddRow(6)),
					withInsertVisitResult(sqlmock.NewRows([]string{"visit_id"}).AddRow(10)),
					withCommit(),
				},
				registration: RegistrationRequest{
					PatientName: "Bob Mason",
					Phone:       "13800000002",
					DeptID:      1,
					RoomID:      2,
				},
			},
			wantSuccess: true,
		},
		{
			name: "should register a visit honouring a booking",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withBegin(),
					withFindPatientByPhoneResult(sqlmock.NewRows(patientColumns()).AddRow(5, "Alice Turner", "F", nil, "13800000001")),
					withInsertVisitResult(sqlmock.NewRows([]string{"visit_id"}).AddRow(11)),
					withMarkAppointmentResult(sqlmock.NewResult(0, 1)),
					withCommit(),
				},
				registration: RegistrationRequest{
					PatientName: "Alice Turner",
					Phone:       "13800000001",
					DeptID:      1,
					RoomID:      1,
					ApptID:      &apptID,
				},
			},
			wantSuccess: true,
		},
		{
			name: "should roll the registration back when the referenced booking does not exist",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withBegin(),
					withFindPatientByPhoneResult(sqlmock.NewRows(patientColumns()).AddRow(5, "Alice Turner", "F", nil, "13800000001")),
					withInsertVisitResult(sqlmock.NewRows([]string{"visit_id"}).AddRow(12)),
					withMarkAppointmentResult(sqlmock.NewResult(0, 0)),
					withRollback(),
				},
				registration: RegistrationRequest{
					PatientName: "Alice Turner",
					Phone:       "13800000001",
					DeptID:      1,
					RoomID:      1,
					ApptID:      &apptID,
				},
			},
			wantSuccess: false,
		},
		{
			name: "should not register a visit because the phone is missing",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				registration: RegistrationRequest{
					PatientName: "Alice Turner",
					DeptID:      1,
					RoomID:      1,
				},
			},
			wantSuccess: false,
		},
		{
			name: "should roll the registration back due to a database error while inserting the visit",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withBegin(),
					withFindPatientByPhoneResult(sqlmock.NewRows(patientColumns()).AddRow(5, "Alice Turner", "F", nil, "13800000001")),
					withInsertVisitError(),
					withRollback(),
				},
				registration: RegistrationRequest{
					PatientName: "Alice Turner",
					Phone:       "13800000001",
					DeptID:      1,
					RoomID:      1,
				},
			},
			wantSuccess: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, mockAuthorizerFor(mockReceptionistUser()), tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			body, _ := json.Marshal(tt.args.registration)
			req, _ := http.NewRequest("POST", "/api/v1/visits", bytes.NewBuffer(body))
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != http.StatusOK {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, http.StatusOK)
			}

			envelope := decodeEnvelope(t, recorder.Body)
			if envelope.Success != tt.wantSuccess {
				t.Errorf("envelope success is incorrect, got %v, want %v, message %s", envelope.Success, tt.wantSuccess, envelope.Message)
			}

			if err := tt.args.dbConn.SQLMock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestGetVisits(t *testing.T) {
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		query         string
	}
	tests := []struct {
		name        string
		args        args
		wantSuccess bool
	}{
		{
			name: "should get the visits of the given date",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withListVisitsResult(sqlmock.NewRows(visitColumns()).
						AddRow(9, "Alice Turner", "Internal Medicine", "Room 101", "09:45", StatusWaiting, "Dr. Chen")),
				},
				query: "?date=2026-09-01",
			},
			wantSuccess: true,
		},
		{
			name: "should get the visits of the given date filtered by status",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withListVisitsByStatusResult(sqlmock.NewRows(visitColumns()).
						AddRow(9, "Alice Turner", "Internal Medicine", "Room 101", "09:45", StatusWaiting, nil)),
				},
				query: "?date=2026-09-01&status=waiting",
			},
			wantSuccess: true,
		},
		{
			name: "should not get the visits because the date is invalid",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				query:  "?date=01-09-2026",
			},
			wantSuccess: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, mockAuthorizerFor(mockReceptionistUser()), tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/visits%s", tt.args.query), nil)
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != http.StatusOK {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, http.StatusOK)
			}

			envelope := decodeEnvelope(t, recorder.Body)
			if envelope.Success != tt.wantSuccess {
				t.Errorf("envelope success is incorrect, got %v, want %v, message %s", envelope.Success, tt.wantSuccess, envelope.Message)
			}
		})
	}
}

func TestGetPatientHistory(t *testing.T) {
	type args struct {
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
		patientID     string
	}
	tests := []struct {
		name        string
		args        args
		wantSuccess bool
	}{
		{
			name: "should get the patient history",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByIDResult(sqlmock.NewRows(patientColumns()).AddRow(5, "Alice Turner", "F", nil, "13800000001")),
					withListPatientVisitsResult(sqlmock.NewRows([]string{"visit_id", "visit_date", "visit_time", "dept_name", "room_name", "doctor_name", "diagnosis", "prescription", "status"}).
						AddRow(9, "2026-08-20", "10:15", "Internal Medicine", "Room 101", "Dr. Chen", "Common cold", "Rest and fluids", StatusDeparted)),
				},
				patientID: "5",
			},
			wantSuccess: true,
		},
		{
			name: "should not get the history of an unknown patient",
			args: args{
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withFindPatientByIDResult(sqlmock.NewRows(patientColumns())),
				},
				patientID: "99",
			},
			wantSuccess: false,
		},
		{
			name: "should not get the history because the identifier is invalid",
			args: args{
				dbConn:    mock.MustCreateConnectionMock(),
				patientID: "abc",
			},
			wantSuccess: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, mockAuthorizerFor(mockReceptionistUser()), tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/patients/%s/history", tt.args.patientID), nil)
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != http.StatusOK {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, http.StatusOK)
			}

			envelope := decodeEnvelope(t, recorder.Body)
			if envelope.Success != tt.wantSuccess {
				t.Errorf("envelope success is incorrect, got %v, want %v, message %s", envelope.Success, tt.wantSuccess, envelope.Message)
			}
		})
	}
}

func TestSearchPatients(t *testing.T) {
	type args struct {
		user          *auth.User
		dbConn        mock.Connection
		dbMockOptions []mock.DBResultOption
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "should search patients by keyword",
			args: args{
				user:   mockAdminUser(),
				dbConn: mock.MustCreateConnectionMock(),
				dbMockOptions: []mock.DBResultOption{
					withSearchPatientsResult(sqlmock.NewRows([]string{"patient_id", "patient_name", "gender", "phone", "id_card", "visit_count", "last_visit_date"}).
						AddRow(5, "Alice Turner", "F", "13800000001", nil, 3, "2026-08-20")),
				},
			},
			want: http.StatusOK,
		},
		{
			name: "should not search patients because the user is not an administrator",
			args: args{
				user:   mockReceptionistUser(),
				dbConn: mock.MustCreateConnectionMock(),
			},
			want: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			Setup(router, logger, mockAuthorizerFor(tt.args.user), tt.args.dbConn)

			mock.MockDBResults(tt.args.dbConn, tt.args.dbMockOptions...)

			req, _ := http.NewRequest("GET", "/api/v1/admin/patients?keyword=Alice", nil)
			req.Header.Add("Authorization", "Bearer testing")

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			response := recorder.Result()

			if response.StatusCode != tt.want {
				t.Errorf("response status is incorrect, got %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}
