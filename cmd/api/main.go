package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"rentitforward/internal/adapter/api"
	"rentitforward/internal/adapter/api/handler"
	apimiddleware "rentitforward/internal/adapter/api/middleware"
	"rentitforward/internal/adapter/api/router"
	"rentitforward/internal/adapter/repository"
	"rentitforward/internal/domain/service"
	"rentitforward/internal/infrastructure/firebase"
	"rentitforward/internal/infrastructure/geocoding"
	"rentitforward/internal/infrastructure/payment"
	"rentitforward/internal/infrastructure/push"
	"rentitforward/internal/infrastructure/realtime"
	"rentitforward/internal/infrastructure/storage"
	"rentitforward/internal/usecase"
	"rentitforward/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	credentialsPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	firebaseApp, err := firebase.NewApp(ctx, cfg, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	bookingRepo := repository.NewFirestoreBookingRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	deviceTokenRepo := repository.NewFirestoreDeviceTokenRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient)

	var geocoder geocoding.Geocoder
	switch cfg.GeocodingProvider {
	case "google":
		geocoder = geocoding.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	case "mapbox":
		geocoder = geocoding.NewMapboxGeocoder(cfg.MapboxAccessToken)
	default:
		geocoder = geocoding.NewNominatimGeocoder()
	}

	var pushService push.Service
	if cfg.PushProvider == "onesignal" {
		pushService = push.NewOneSignalService(cfg.OneSignalAppID, cfg.OneSignalAPIKey, cfg.AppBaseURL)
	} else {
		messagingClient, err := firebase.NewMessagingClient(ctx, firebaseApp)
		if err != nil {
			log.Fatalf("Failed to initialize FCM: %v", err)
		}
		pushService = push.NewFCMService(messagingClient, cfg.AppBaseURL)
	}

	var gateway service.EscrowGateway
	if cfg.IsStripeConfigured() {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	} else {
		log.Printf("Stripe credentials not configured; payment operations disabled")
		gateway = payment.NewDisabledGateway()
	}

	realtimeManager := realtime.NewManager()
	realtimeManager.Start(ctx)

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, deviceTokenRepo, userRepo, pushService, realtimeManager)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient, geocoder)
	listingUseCase := usecase.NewListingUseCase(listingRepo, userRepo, favoriteRepo, geocoder)
	bookingUseCase := usecase.NewBookingUseCase(bookingRepo, listingRepo, userRepo, notificationUseCase)
	paymentUseCase := usecase.NewPaymentUseCase(gateway, bookingRepo, listingRepo, userRepo, notificationUseCase, cfg.PlatformFeePercent)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, bookingRepo, listingRepo, userRepo, notificationUseCase)
	messageUseCase := usecase.NewMessageUseCase(conversationRepo, listingRepo, userRepo, notificationUseCase)
	searchUseCase := usecase.NewSearchUseCase(listingRepo)

	handler.Setup(userUseCase, listingUseCase, bookingUseCase, paymentUseCase, notificationUseCase, messageUseCase, reviewUseCase, searchUseCase)
	handler.SetupFileHandler(storageClient)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, authMiddleware, adminMiddleware)
	router.SetupWebSocketRouter(e, handler.NewWebSocketHandler(realtimeManager, authMiddleware))
	router.SetupHealthRouter(e, handler.NewHealthHandler(realtimeManager))

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
