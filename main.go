package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"

	"artmarket-backend/config"
	routes "artmarket-backend/internal/app/http"
	"artmarket-backend/internal/checkout"
	"artmarket-backend/internal/infra/aiverify"
	"artmarket-backend/internal/infra/filestore"
	"artmarket-backend/internal/ingest"
	"artmarket-backend/internal/store"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	var st store.Store
	if config.DB_URL == "" {
		log.Println("⚠️ DB_URL not set, using in-memory store (records are lost on restart)")
		st = store.NewMemory()
	} else {
		gormStore, err := store.OpenGorm(config.DB_URL)
		if err != nil {
			log.Fatal("❌ Failed to connect to database: ", err)
		}
		log.Println("✅ Connected and migrated successfully")
		st = gormStore
	}

	disk, err := filestore.NewDisk(config.UPLOAD_DIR)
	if err != nil {
		log.Fatal("❌ Failed to prepare upload dir: ", err)
	}

	// The disk copy is always written first; a remote backend adds a
	// mirror and takes over delivery via signed URLs.
	var mirror filestore.Backend
	delivery := filestore.Backend(disk)
	if config.STORAGE_BACKEND == "supabase" {
		if config.SUPABASE_URL == "" || config.SUPABASE_SERVICE_KEY == "" {
			log.Fatal("❌ STORAGE_BACKEND=supabase requires SUPABASE_URL and SUPABASE_SERVICE_KEY")
		}
		remote := filestore.NewSupabase(config.SUPABASE_URL, config.SUPABASE_SERVICE_KEY, config.SUPABASE_BUCKET)
		mirror = remote
		delivery = remote
	}

	verifier := aiverify.NewClient(config.AI_VERIFY_URL, config.AI_VERIFY_TIMEOUT)
	pipeline := ingest.New(st, disk, mirror, verifier)

	stripeConfigured := config.STRIPE_SECRET_KEY != ""
	if stripeConfigured {
		stripe.Key = config.STRIPE_SECRET_KEY
	} else {
		log.Println("⚠️ STRIPE_SECRET_KEY not set, checkout runs in simulated mode")
	}
	checkoutSvc := checkout.New(st, stripeConfigured, config.APP_URL, config.CURRENCY)

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Store:         st,
		Pipeline:      pipeline,
		Checkout:      checkoutSvc,
		Delivery:      delivery,
		Disk:          disk,
		WebhookSecret: config.STRIPE_WEBHOOK_SECRET,
	})

	r.Run(":" + config.PORT)
}
