package leads

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

type UpdateLeadRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	ContactPhone    string   `json:"contact_phone"`
	LastCity        string   `json:"last_city"`
	Source          string   `json:"source"`
	Status          string   `json:"status"`
	Value           *float64 `json:"value"`
	ConnectionLevel string   `json:"connection_level"`
	OwnerID         string   `json:"owner_id"`
	Notes           string   `json:"notes"`
}

func UpdateOne(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")

	id, err := bson.ObjectIDFromHex(idStr)
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	reqBody := UpdateLeadRequest{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.LEADS_INVALID_REQUEST_DATA)
		return
	}

	updateDoc := bson.D{}

	if reqBody.Name != "" {
		updateDoc = append(updateDoc, bson.E{Key: "name", Value: reqBody.Name})
	}
	if reqBody.Email != "" {
		updateDoc = append(updateDoc, bson.E{Key: "email", Value: reqBody.Email})
	}
	if reqBody.ContactPhone != "" {
		updateDoc = append(updateDoc, bson.E{Key: "contact_phone", Value: reqBody.ContactPhone})
	}
	if reqBody.LastCity != "" {
		updateDoc = append(updateDoc, bson.E{Key: "last_city", Value: reqBody.LastCity})
	}
	if reqBody.Source != "" {
		updateDoc = append(updateDoc, bson.E{Key: "source", Value: reqBody.Source})
	}
	if reqBody.Status != "" {
		if !schemas.IsValidLeadStatus(reqBody.Status) {
			utils.SendResponse(w, http.StatusBadRequest, "Status de lead inválido", nil, 0)
			return
		}
		updateDoc = append(updateDoc, bson.E{Key: "status", Value: reqBody.Status})
	}
	if reqBody.Value != nil {
		if *reqBody.Value < 0 {
			utils.SendResponse(w, http.StatusBadRequest, "Campo 'value' não pode ser negativo", nil, 0)
			return
		}
		updateDoc = append(updateDoc, bson.E{Key: "value", Value: *reqBody.Value})
	}
	if reqBody.ConnectionLevel != "" {
		updateDoc = append(updateDoc, bson.E{Key: "connection_level", Value: reqBody.ConnectionLevel})
	}
	if reqBody.Notes != "" {
		updateDoc = append(updateDoc, bson.E{Key: "notes", Value: reqBody.Notes})
	}
	if reqBody.OwnerID != "" {
		ownerID, err := bson.ObjectIDFromHex(reqBody.OwnerID)
		if err != nil {
			utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_USER_ID_FORMAT)
			return
		}
		updateDoc = append(updateDoc, bson.E{Key: "owner_id", Value: ownerID})
	}

	if len(updateDoc) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum campo para atualizar foi fornecido", nil, 0)
		return
	}

	updateDoc = append(updateDoc, bson.E{Key: "updated_at", Value: time.Now()})

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

	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: updateDoc}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_UPDATE_LEAD_IN_MONGODB)
		return
	}

	if result.MatchedCount == 0 {
		utils.SendResponse(w, http.StatusNotFound, "Lead não encontrado", nil, 0)
		return
	}

	// Valor/conexão também refletem na oportunidade do lead, quando houver.
	if reqBody.Value != nil || reqBody.ConnectionLevel != "" {
		oppDoc := bson.D{}
		if reqBody.Value != nil {
			oppDoc = append(oppDoc, bson.E{Key: "value", Value: *reqBody.Value})
		}
		if reqBody.ConnectionLevel != "" {
			oppDoc = append(oppDoc, bson.E{Key: "connection_level", Value: reqBody.ConnectionLevel})
		}
		oppDoc = append(oppDoc, bson.E{Key: "updated_at", Value: time.Now()})

		oppCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_OPPORTUNITIES)
		_, _ = oppCollection.UpdateOne(ctx,
			bson.D{{Key: "lead_id", Value: id}},
			bson.D{{Key: "$set", Value: oppDoc}})
	}

	PublishChange(ctx)

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
