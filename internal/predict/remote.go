package predict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Watsonx defaults.
const (
	DefaultIAMURL     = "https://iam.cloud.ibm.com/identity/token"
	DefaultScoringURL = "https://au-syd.ml.cloud.ibm.com/ml/v4/deployments/23558892-2ba7-4318-a1c3-ad980f07df57/predictions?version=2021-05-01"

	// APIKeyEnv is the variable users set for remote prediction.
	APIKeyEnv = "WATSON_API_KEY"

	apiKeyGrantType = "urn:ibm:params:oauth:grant-type:apikey"
)

// Values sent for required fields the caller did not supply.
const (
	PlaceholderEmployeeID   = "EMP102"
	PlaceholderEmployeeName = "Test User"
	PlaceholderJoiningDate  = "2023-01-01"
)

// RemoteFields is the fixed field order of the scoring payload.
var RemoteFields = []string{
	model.ColumnEmployeeID,
	model.ColumnEmployeeName,
	model.ColumnAge,
	model.ColumnCountry,
	model.ColumnDepartment,
	model.ColumnPosition,
	model.ColumnJoiningDate,
}

// Remote exchanges an API key for a bearer token and calls the scoring
// deployment. Every prediction makes both calls; nothing is cached.
type Remote struct {
	httpClient *http.Client
	rest       *resty.Client
	apiKey     string
	iamURL     string
	scoringURL string
}

// NewRemote creates a remote predictor. A missing API key is reported by
// Predict, not here.
func NewRemote(cfg Config) *Remote {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	iamURL := cfg.IAMURL
	if iamURL == "" {
		iamURL = DefaultIAMURL
	}
	scoringURL := cfg.ScoringURL
	if scoringURL == "" {
		scoringURL = DefaultScoringURL
	}

	return &Remote{
		httpClient: httpClient,
		rest:       resty.NewWithClient(httpClient),
		apiKey:     cfg.APIKey,
		iamURL:     iamURL,
		scoringURL: scoringURL,
	}
}

// Mode implements Predictor.
func (r *Remote) Mode() model.Mode {
	return model.ModeRemote
}

// Predict implements Predictor.
func (r *Remote) Predict(ctx context.Context, raw model.RawRecord) (float64, error) {
	if r.apiKey == "" {
		return 0, &MissingCredentialError{Name: APIKeyEnv}
	}

	token, err := r.token(ctx)
	if err != nil {
		return 0, err
	}

	return r.score(ctx, token, raw)
}

func (r *Remote) token(ctx context.Context) (string, error) {
	cc := clientcredentials.Config{
		TokenURL: r.iamURL,
		EndpointParams: url.Values{
			"apikey":     {r.apiKey},
			"grant_type": {apiKeyGrantType},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	tok, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, r.httpClient))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			authErr := &AuthError{Err: err, Body: string(retrieveErr.Body)}
			if retrieveErr.Response != nil {
				authErr.StatusCode = retrieveErr.Response.StatusCode
			}
			return "", authErr
		}
		return "", &AuthError{Err: err}
	}

	slog.Debug("Obtained IAM token", "expiry", tok.Expiry)
	return tok.AccessToken, nil
}

type scoringRequest struct {
	InputData []scoringInput `json:"input_data"`
}

type scoringInput struct {
	Fields []string `json:"fields"`
	Values [][]any  `json:"values"`
}

type scoringResponse struct {
	Predictions []struct {
		Values [][]any `json:"values"`
	} `json:"predictions"`
}

// Payload builds the scoring request body for raw. Department and Position
// are sent as entered.
func Payload(raw model.RawRecord) any {
	return scoringRequest{
		InputData: []scoringInput{{
			Fields: RemoteFields,
			Values: [][]any{{
				orDefault(raw.EmployeeID, PlaceholderEmployeeID),
				orDefault(raw.EmployeeName, PlaceholderEmployeeName),
				raw.Age,
				raw.Country,
				raw.Department,
				raw.Position,
				orDefault(raw.JoiningDate, PlaceholderJoiningDate),
			}},
		}},
	}
}

func (r *Remote) score(ctx context.Context, token string, raw model.RawRecord) (float64, error) {
	res, err := r.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(Payload(raw)).
		Post(r.scoringURL)
	if err != nil {
		return 0, &RemoteInvocationError{Err: err}
	}

	body := res.String()
	if !res.IsSuccess() {
		return 0, &RemoteInvocationError{StatusCode: res.StatusCode(), Body: body}
	}

	var out scoringResponse
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		return 0, &RemoteInvocationError{Err: fmt.Errorf("invalid response: %w", err), Body: body}
	}
	if len(out.Predictions) == 0 || len(out.Predictions[0].Values) == 0 || len(out.Predictions[0].Values[0]) == 0 {
		return 0, &RemoteInvocationError{Err: errors.New("response has no prediction"), Body: body}
	}

	salary, ok := out.Predictions[0].Values[0][0].(float64)
	if !ok {
		return 0, &RemoteInvocationError{Err: errors.New("prediction is not numeric"), Body: body}
	}

	slog.Debug("Remote prediction", "salary", salary)
	return salary, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
