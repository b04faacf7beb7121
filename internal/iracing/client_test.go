package iracing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/results-collector/internal/config"
	"github.com/yourusername/results-collector/internal/models"
)

const (
	testUsername = "driver@example.com"
	testPassword = "hunter2"
)

const sampleSheet = `"Start Time","Track","Series","Hosted Session Name","Session Name","Subsession ID"
"2019-04-01 12:00:00","Lime Rock Park","Skip Barber Race Series","","","27000001"

"Fin Pos","Car ID","Car","Car Class ID","Car Class","Team ID","Cust ID","Name","Start Pos","Car #","Out ID","Out","Interval","Laps Led","Qualify Time","Average Lap Time","Fastest Lap Time","Fast Lap#","Laps Comp","Inc","Pts","Club Pts","Div","Club ID","Club","Old iRating","New iRating","Old License Level","Old License Sub-Level","New License Level","New License Sub-Level","Series Name","Max Fuel Fill%","Weight Penalty (KG)","Agg Pts"
"1","1","Skip Barber Formula 2000","1","Skip Barber","-9","-9","Night Owls","2","7","0","Running","","10","00.000","1:01.250","59.875","4","12","0","50","5","1","3","Atlantic","","","","","","","Skip Barber Race Series","100","0","50"
"1","1","Skip Barber Formula 2000","1","Skip Barber","-9","101","A Driver","2","7","0","Running","","10","1:00.500","1:01.250","59.875","4","12","0","50","5","1","3","Atlantic","1500","1550","8","350","8","360","Skip Barber Race Series","100","0","50"
"2","1","Skip Barber Formula 2000","1","Skip Barber","102","102","B Driver","1","8","0","Running","-0.512","2","00.000","1:02.000","1:00.125","","12","4","45","4","2","3","Atlantic","1400","1380","8","300","8","290","Skip Barber Race Series","100","0","45"
`

type fakeSite struct {
	events   []map[string]interface{}
	sheets   map[int64]string
	archive  []string
	loginHit int
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	return &fakeSite{sheets: map[int64]string{}}
}

func (f *fakeSite) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/membersite/Login", func(w http.ResponseWriter, r *http.Request) {
		f.loginHit++
		_ = r.ParseForm()
		if r.PostForm.Get("username") != testUsername || r.PostForm.Get("password") != testPassword {
			http.Redirect(w, r, "/membersite/failedlogin.jsp", http.StatusFound)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "irsso_membersv2", Value: "session", Path: "/"})
		http.Redirect(w, r, "/membersite/member/Home.do", http.StatusFound)
	})
	mux.HandleFunc("/membersite/member/Home.do", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("home"))
	})
	mux.HandleFunc("/membersite/failedlogin.jsp", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bad login"))
	})
	mux.HandleFunc("/cars", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"1":{"id":1,"abbrevname":"SBF","name":"Skip+Barber+Formula+2000","dirpath":"skipbarber"},"2":{"id":2,"abbrevname":"MX5","name":"Mazda+MX-5","dirpath":"mx5"}}`))
	})
	mux.HandleFunc("/carclasses", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Skip+Barber","shortname":"SBRS"}]`))
	})
	mux.HandleFunc("/tracks", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":10,"name":"Lime+Rock+Park","config":"Full+Course","lowerNameAndConfig":"lime+rock+park+full+course","catid":2,"freeWithSubscription":"true"}]`))
	})
	mux.HandleFunc("/memberstats/member/GetResults", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if _, err := r.Cookie("irsso_membersv2"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.archive = append(f.archive, r.PostForm.Encode())
		lower, _ := strconv.Atoi(r.PostForm.Get("lowerbound"))
		upper, _ := strconv.Atoi(r.PostForm.Get("upperbound"))
		_ = json.NewEncoder(w).Encode(archivePayload(f.events, lower, upper))
	})
	mux.HandleFunc("/membersite/member/GetEventResultsAsCSV", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.URL.Query().Get("subsessionid"), 10, 64)
		sheet, ok := f.sheets[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sheet))
	})

	return mux
}

// archivePayload renders rows in the site's compressed table format.
func archivePayload(events []map[string]interface{}, lower, upper int) map[string]interface{} {
	columns := map[string]string{
		"1": "subsessionid", "2": "custid", "3": "carclassid", "4": "displayname",
		"5": "season_year", "6": "season_quarter", "7": "rowcount", "8": "strengthoffield",
	}
	ids := map[string]string{}
	for id, name := range columns {
		ids[name] = id
	}

	var rows []map[string]interface{}
	for i := lower; i <= upper && i <= len(events); i++ {
		row := map[string]interface{}{ids["rowcount"]: len(events)}
		for name, v := range events[i-1] {
			row[ids[name]] = v
		}
		rows = append(rows, row)
	}

	return map[string]interface{}{
		"m": columns,
		"d": map[string]interface{}{"r": rows, ids["rowcount"]: len(events)},
	}
}

func newTestClient(t *testing.T, site *fakeSite) *Client {
	server := httptest.NewServer(site.handler())
	t.Cleanup(server.Close)

	cfg := &config.IRacingConfig{
		BaseURL:           server.URL,
		Username:          testUsername,
		Password:          testPassword,
		TimeoutSeconds:    5,
		MaxRetries:        0,
		RateLimit:         1000,
		CircuitBreakerMax: 5,
		CarsPath:          "/cars",
		CarClassesPath:    "/carclasses",
		TracksPath:        "/tracks",
	}
	return NewClient(cfg, nil, nil)
}

func TestLoginLoadsCatalog(t *testing.T) {
	client := newTestClient(t, newFakeSite(t))

	require.NoError(t, client.Login(context.Background()))
	assert.True(t, client.IsAuthenticated())

	catalog := client.Catalog()
	require.Len(t, catalog.Cars, 2)
	assert.Equal(t, models.Car{CarID: 1, AbbrevName: "SBF", Name: "Skip Barber Formula 2000", DirPath: "skipbarber"}, catalog.Cars[0])
	require.Len(t, catalog.CarClasses, 1)
	assert.Equal(t, "SBRS", catalog.CarClasses[0].ShortName)
	require.Len(t, catalog.Tracks, 1)
	assert.Equal(t, "Full Course", catalog.Tracks[0].Config)
	assert.Equal(t, "lime rock park full course", catalog.Tracks[0].LowerNameAndConfig)
	assert.Equal(t, 2, catalog.Tracks[0].CatID)
	assert.False(t, catalog.IsEmpty())
}

func TestLoginRejected(t *testing.T) {
	client := newTestClient(t, newFakeSite(t))
	client.config.Password = "wrong"

	err := client.Login(context.Background())
	require.Error(t, err)

	var authErr *AuthenticationError
	assert.True(t, errors.As(err, &authErr))
	assert.True(t, errors.Is(err, ErrAuthenticationFailed))
	assert.False(t, client.IsAuthenticated())
	assert.True(t, client.Catalog().IsEmpty())
}

func TestResultsArchivePagination(t *testing.T) {
	site := newFakeSite(t)
	for i := 0; i < 51; i++ {
		site.events = append(site.events, map[string]interface{}{
			"subsessionid":    27000000 + i,
			"custid":          100 + i,
			"carclassid":      1,
			"displayname":     fmt.Sprintf("Driver+%d", i),
			"season_year":     2019,
			"season_quarter":  2,
			"strengthoffield": 1650,
		})
	}
	client := newTestClient(t, site)
	require.NoError(t, client.Login(context.Background()))

	season := models.Season{Year: 2019, Quarter: 2}
	first, err := client.ResultsArchive(context.Background(), ArchiveQuery{Season: season, Category: CategoryRoad, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 51, first.Total)
	require.Len(t, first.Events, ArchivePageSize)
	assert.Equal(t, int64(27000000), first.Events[0].SubsessionID)
	assert.Equal(t, "Driver 0", first.Events[0].DisplayName)
	assert.Equal(t, 2019, first.Events[0].SeasonYear)

	last, err := client.ResultsArchive(context.Background(), ArchiveQuery{Season: season, Category: CategoryRoad, Page: 3})
	require.NoError(t, err)
	require.Len(t, last.Events, 1)
	assert.Equal(t, int64(27000050), last.Events[0].SubsessionID)

	require.Len(t, site.archive, 2)
	assert.Contains(t, site.archive[0], "category=2")
	assert.Contains(t, site.archive[0], "lowerbound=1")
	assert.Contains(t, site.archive[1], "lowerbound=51")
	assert.Contains(t, site.archive[1], "upperbound=75")
}

func TestArchiveQueryBounds(t *testing.T) {
	lower, upper := ArchiveQuery{Page: 2}.Bounds()
	assert.Equal(t, 26, lower)
	assert.Equal(t, 50, upper)

	lower, upper = ArchiveQuery{}.Bounds()
	assert.Equal(t, 1, lower)
	assert.Equal(t, 25, upper)
}

func TestEventResults(t *testing.T) {
	site := newFakeSite(t)
	site.sheets[27000001] = sampleSheet
	client := newTestClient(t, site)

	results, err := client.EventResults(context.Background(), 27000001)
	require.NoError(t, err)
	require.Equal(t, ResultsFound, results.Status)
	require.Len(t, results.Rows, 3)
	assert.Equal(t, "27000001", results.Summary["subsessionid"])

	row := results.Rows[1]
	assert.Equal(t, "Skip Barber Formula 2000", row["car"])
	assert.Equal(t, "7", row["car2"])
	assert.Equal(t, "1:00.500", row["qualifytime"])
	assert.Equal(t, "100", row["maxfuelfill"])
	assert.Equal(t, "0", row["weightpenaltykg"])

	decoded, err := DecodeResultRow(27000001, row)
	require.NoError(t, err)
	assert.Equal(t, int64(27000001), decoded.SubsessionID)
	assert.Equal(t, int64(101), decoded.CustID)
	assert.Equal(t, int64(-9), decoded.TeamID)
	assert.Equal(t, 1, decoded.FinPos)
	assert.Equal(t, "A Driver", decoded.Name)
	require.NotNil(t, decoded.OldIRating)
	assert.Equal(t, 1500, *decoded.OldIRating)
	assert.Nil(t, decoded.Interval)
	assert.Nil(t, decoded.QualifyTime)
	assert.Equal(t, 100, decoded.MaxFuelFill)

	second, err := DecodeResultRow(27000001, results.Rows[2])
	require.NoError(t, err)
	require.NotNil(t, second.Interval)
	assert.Equal(t, "-0.512", *second.Interval)
	assert.Nil(t, second.FastLap)
}

func TestEventResultsUnavailable(t *testing.T) {
	site := newFakeSite(t)
	site.sheets[2] = "\"Start Time\"\n\"2019-04-01\"\n"
	site.sheets[3] = strings.Replace(sampleSheet, `"45","4","2","3","Atlantic"`, `"45","4"`, 1)
	client := newTestClient(t, site)

	tests := []struct {
		name string
		id   int64
	}{
		{name: "missing", id: 1},
		{name: "too short", id: 2},
		{name: "ragged row", id: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := client.EventResults(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, ResultsUnavailable, results.Status)
			assert.NotEmpty(t, results.Reason)
			assert.Empty(t, results.Rows)
		})
	}
}

func TestEventResultsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	cfg := &config.IRacingConfig{BaseURL: server.URL, TimeoutSeconds: 1, RateLimit: 1000, CircuitBreakerMax: 5}
	client := NewClient(cfg, nil, nil)

	_, err := client.EventResults(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestNormalizeHeader(t *testing.T) {
	got := NormalizeHeader([]string{"Fin Pos", "Weight Penalty (KG)", "Max Fuel Fill%", "Old License Sub-Level", "Car", "Car #"})
	assert.Equal(t, []string{"finpos", "weightpenaltykg", "maxfuelfill", "oldlicensesublevel", "car", "car2"}, got)
}

func TestCircuitBreakerOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:           time.Second,
		MaxRetries:        0,
		RateLimit:         1000,
		CircuitBreakerMax: 2,
	}, nil)

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), url)
		require.Error(t, err)
	}

	_, err := client.Get(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}
