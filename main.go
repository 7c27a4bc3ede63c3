package main

import (
	"flag"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"cadrebook/api"
	"cadrebook/constants"
	"cadrebook/database"
	docs "cadrebook/doclib"
	"cadrebook/monitoring"
	authroutes "cadrebook/routes/auth"
	"cadrebook/routes/comments"
	"cadrebook/routes/posts"
	"cadrebook/routes/users"
	"cadrebook/state"
	"cadrebook/types"
	"cadrebook/uapi"

	"github.com/cloudflare/tableflip"

	"github.com/infinitybotlist/eureka/jsonimpl"
	"github.com/infinitybotlist/eureka/zapchi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	_ "embed"
)

//go:embed data/docs.html
var docsHTML string

const appName = "cadrebook"

// Simple middleware to handle CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// limit body to 1mb
		r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)

		origin := "*"
		if state.Config != nil && state.Config.Server.CorsOrigin != "" {
			origin = state.Config.Server.CorsOrigin
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")

		if origin != "*" {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == "OPTIONS" {
			w.Write([]byte{})
			return
		}

		w.Header().Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}

// newRouter builds the full HTTP surface on top of an already set up state.
func newRouter() http.Handler {
	docs.DocsSetupData = &docs.SetupData{
		URL:         "http://localhost" + state.Config.Server.Port + "/",
		ErrorStruct: types.ApiError{},
		Info: docs.Info{
			Title:       "Cadrebook",
			Version:     "1.0",
			Description: "A small social network: accounts, follows, posts, comments and likes.",
			Contact: docs.Contact{
				Name: "Cadrebook",
			},
			License: docs.License{
				Name: "AGPL-3.0",
				URL:  "https://opensource.org/licenses/AGPL-3.0",
			},
		},
	}

	docs.Setup()
	docs.AddBearerSecuritySchema("BearerAuth", "Access token from /auth/register or /auth/login")
	api.Setup()

	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.CleanPath,
		middleware.Heartbeat("/ping"),
		middleware.Compress(5),
		middleware.Timeout(30*time.Second),
		monitoring.InstrumentHandler,
		corsMiddleware,
		zapchi.Logger(state.Logger, "api"),
	)

	routers := []uapi.APIRouter{
		authroutes.Router{},
		users.Router{},
		posts.Router{},
		comments.Router{},
	}

	for _, router := range routers {
		name, desc := router.Tag()
		if name != "" {
			docs.AddTag(name, desc)
			uapi.State.SetCurrentTag(name)
		} else {
			panic("Router tag name cannot be empty")
		}

		router.Routes(r)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		bytes, _ := jsonimpl.Marshal(types.Health{Status: "ok", App: appName})
		w.Write(bytes)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Load openapi here to avoid large marshalling in every request
	openapi, err := jsonimpl.Marshal(docs.GetSchema())
	if err != nil {
		panic(err)
	}

	r.Get("/openapi", func(w http.ResponseWriter, r *http.Request) {
		w.Write(openapi)
	})

	docsTempl := template.Must(template.New("docs").Parse(docsHTML))

	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		docsTempl.Execute(w, map[string]string{
			"url": "/openapi",
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(constants.EndpointNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(constants.MethodNotAllowed))
	})

	return r
}

// repairCounters rewrites drifted denormalized counters and exits.
func repairCounters() {
	drift, err := database.CheckCounters(state.Pool)
	if err != nil {
		state.Logger.Fatal("Error checking counters", zap.Error(err))
	}

	for _, d := range drift {
		state.Logger.Info("Counter drift", zap.String("table", d.Table), zap.String("column", d.Column), zap.Uint("id", d.ID), zap.Int64("stored", d.Stored), zap.Int64("computed", d.Computed))
	}

	fixed, err := database.RepairCounters(state.Pool)
	if err != nil {
		state.Logger.Fatal("Error repairing counters", zap.Error(err))
	}

	state.Logger.Info("Counters repaired", zap.Int64("rows", fixed))
}

// seedDemo inserts the demo accounts and posts, skipping accounts that already exist.
func seedDemo() {
	users, posts, err := database.Seed(state.Pool, state.Passwords)
	if err != nil {
		state.Logger.Fatal("Error seeding database", zap.Error(err))
	}

	state.Logger.Info("Database seeded", zap.Int("users", users), zap.Int("posts", posts), zap.String("password", database.SeedPassword))
}

func main() {
	repair := flag.Bool("repair-counters", false, "Recompute follower, like and comment counters from their source rows, then exit")
	seed := flag.Bool("seed", false, "Create the demo accounts and posts if missing, then exit")
	flag.Parse()

	state.Setup()

	if *seed {
		seedDemo()
	}

	if *repair {
		repairCounters()
	}

	if *seed || *repair {
		return
	}

	r := newRouter()

	// If GOOS is windows, do normal http server
	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		upg, _ := tableflip.New(tableflip.Options{})
		defer upg.Stop()

		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGHUP)
			for range sig {
				state.Logger.Info("Received SIGHUP, upgrading server")
				upg.Upgrade()
			}
		}()

		// Listen must be called before Ready
		ln, err := upg.Listen("tcp", state.Config.Server.Port)
		if err != nil {
			state.Logger.Fatal("Error binding to socket", zap.Error(err))
		}

		defer ln.Close()

		server := http.Server{
			ReadTimeout: 30 * time.Second,
			Handler:     r,
		}

		go func() {
			err := server.Serve(ln)
			if err != http.ErrServerClosed {
				state.Logger.Error("Server failed due to unexpected error", zap.Error(err))
			}
		}()

		if err := upg.Ready(); err != nil {
			state.Logger.Fatal("Error calling upg.Ready", zap.Error(err))
		}

		<-upg.Exit()
	} else {
		// Tableflip not supported
		state.Logger.Warn("Tableflip not supported on this platform, this is not a production-capable server.")

		err := http.ListenAndServe(state.Config.Server.Port, r)
		if err != nil {
			state.Logger.Fatal("Error binding to socket", zap.Error(err))
		}
	}
}
