package leads

import (
	"api/database"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	ErrLeadNotFound  = errors.New("lead não encontrado")
	ErrInvalidStatus = errors.New("status de lead inválido")
)

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ApplyStatusChange move um lead de coluna: grava o novo status, registra a
// movimentação no histórico, espelha o status na oportunidade e publica o
// feed de mudanças. Status igual ao atual é no-op silencioso.
func ApplyStatusChange(ctx context.Context, leadID bson.ObjectID, newStatus, changedBy string) error {
	if !schemas.IsValidLeadStatus(newStatus) {
		return ErrInvalidStatus
	}

	ctx, cancel := context.WithTimeout(ctx, database.MONGO_TIMEOUT)
	defer cancel()

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEADS)

	lead := &schemas.Lead{}
	err = collection.FindOne(ctx, bson.D{{Key: "_id", Value: leadID}}).Decode(lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrLeadNotFound
		}
		return err
	}

	if lead.Status == newStatus {
		return nil
	}

	now := time.Now()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: newStatus},
		{Key: "updated_at", Value: now},
	}}}

	if _, err := collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: leadID}}, update); err != nil {
		return err
	}

	oppCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_OPPORTUNITIES)
	_, _ = oppCollection.UpdateMany(ctx,
		bson.D{{Key: "lead_id", Value: leadID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: newStatus},
			{Key: "updated_at", Value: now},
		}}})

	history := &schemas.StatusChange{
		LeadID:     leadID,
		FromStatus: lead.Status,
		ToStatus:   newStatus,
		ChangedBy:  changedBy,
		CreatedAt:  now,
	}
	historyCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEAD_STATUS_HISTORY)
	_, _ = historyCollection.InsertOne(ctx, history)

	middlewares.RecordLeadStatusUpdate(newStatus)
	PublishChange(ctx)

	return nil
}

func UpdateStatus(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")

	id, err := bson.ObjectIDFromHex(idStr)
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	reqBody := UpdateStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.LEADS_INVALID_REQUEST_DATA)
		return
	}

	changedBy := ""
	if user, ok := middlewares.GetAuthUser(r); ok {
		changedBy = user.Email
	}

	err = ApplyStatusChange(r.Context(), id, reqBody.Status, changedBy)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			utils.SendResponse(w, http.StatusBadRequest, "Status de lead inválido", nil, 0)
		case ErrLeadNotFound:
			utils.SendResponse(w, http.StatusNotFound, "Lead não encontrado", nil, 0)
		default:
			utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_UPDATE_LEAD_IN_MONGODB)
		}
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
