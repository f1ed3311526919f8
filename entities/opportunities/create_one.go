package opportunities

import (
	"api/database"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CreateOpportunityRequest struct {
	LeadID          string  `json:"lead_id"`
	Value           float64 `json:"value"`
	ConnectionLevel string  `json:"connection_level"`
}

// CreateOne registra uma oportunidade para um lead existente. O status
// nasce copiado do lead para as agregações não precisarem de join.
func CreateOne(w http.ResponseWriter, r *http.Request) {
	reqBody := CreateOpportunityRequest{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.OPPORTUNITIES_INVALID_REQUEST_DATA)
		return
	}

	leadID, err := bson.ObjectIDFromHex(reqBody.LeadID)
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	if reqBody.Value < 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Campo 'value' não pode ser negativo", nil, 0)
		return
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

	leadCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEADS)

	lead := &schemas.Lead{}
	err = leadCollection.FindOne(ctx, bson.D{{Key: "_id", Value: leadID}}).Decode(lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendResponse(w, http.StatusNotFound, "Lead não encontrado", nil, 0)
			return
		}
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_LEAD_BY_ID_IN_MONGODB)
		return
	}

	now := time.Now()
	opportunity := &schemas.Opportunity{
		LeadID:          leadID,
		Value:           reqBody.Value,
		ConnectionLevel: reqBody.ConnectionLevel,
		Status:          lead.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_OPPORTUNITIES)
	result, err := collection.InsertOne(ctx, opportunity)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_OPPORTUNITY_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "Oportunidade criada com sucesso", map[string]any{"id": result.InsertedID}, 0)
}
