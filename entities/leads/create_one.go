package leads

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CreateLeadRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	ContactPhone    string  `json:"contact_phone"`
	LastCity        string  `json:"last_city"`
	Source          string  `json:"source"`
	Status          string  `json:"status"`
	Value           float64 `json:"value"`
	ConnectionLevel string  `json:"connection_level"`
	OwnerID         string  `json:"owner_id"`
	Notes           string  `json:"notes"`
}

func CreateOne(w http.ResponseWriter, r *http.Request) {
	reqBody := CreateLeadRequest{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.LEADS_INVALID_REQUEST_DATA)
		return
	}

	reqBody.Name = strings.TrimSpace(reqBody.Name)
	reqBody.ContactPhone = strings.TrimSpace(reqBody.ContactPhone)

	if reqBody.Name == "" || reqBody.ContactPhone == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Campos 'name' e 'contact_phone' são obrigatórios", nil, 0)
		return
	}

	if reqBody.Value < 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Campo 'value' não pode ser negativo", nil, 0)
		return
	}

	if reqBody.Status == "" {
		reqBody.Status = schemas.LEAD_STATUS_NOVO
	}
	if !schemas.IsValidLeadStatus(reqBody.Status) {
		utils.SendResponse(w, http.StatusBadRequest, "Status de lead inválido", nil, 0)
		return
	}

	if reqBody.Source != "" && !schemas.IsValidLeadOrigin(reqBody.Source) {
		utils.SendResponse(w, http.StatusBadRequest, "Origem de lead inválida", nil, 0)
		return
	}

	now := time.Now()
	lead := &schemas.Lead{
		Name:            reqBody.Name,
		Email:           reqBody.Email,
		ContactPhone:    reqBody.ContactPhone,
		LastCity:        reqBody.LastCity,
		Source:          reqBody.Source,
		Status:          reqBody.Status,
		Value:           reqBody.Value,
		ConnectionLevel: reqBody.ConnectionLevel,
		Notes:           reqBody.Notes,
		IsVisible:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if reqBody.OwnerID != "" {
		ownerID, err := bson.ObjectIDFromHex(reqBody.OwnerID)
		if err != nil {
			utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_USER_ID_FORMAT)
			return
		}
		lead.OwnerID = ownerID
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEADS)

	result, err := collection.InsertOne(ctx, lead)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_LEAD_TO_MONGODB)
		return
	}

	leadID, _ := result.InsertedID.(bson.ObjectID)
	lead.ID = leadID

	// Valor ou conexão informados viram uma oportunidade junto com o lead.
	if reqBody.Value > 0 || reqBody.ConnectionLevel != "" {
		opportunity := &schemas.Opportunity{
			LeadID:          leadID,
			Value:           reqBody.Value,
			ConnectionLevel: reqBody.ConnectionLevel,
			Status:          reqBody.Status,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		oppCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_OPPORTUNITIES)
		if _, err := oppCollection.InsertOne(ctx, opportunity); err != nil {
			utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_OPPORTUNITY_TO_MONGODB)
			return
		}
	}

	if user, ok := middlewares.GetAuthUser(r); ok && lead.OwnerID.IsZero() && !user.ID.IsZero() {
		// Sem responsável explícito, o lead nasce com quem o cadastrou.
		_, _ = collection.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: leadID}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "owner_id", Value: user.ID}}}})
	}

	PublishChange(ctx)

	utils.SendResponse(w, http.StatusCreated, "", lead, 0)
}
