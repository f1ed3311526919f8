package chat

import (
	"api/database"
	"api/schemas"
	"api/utils"
	"context"
	"net/http"
	"os"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// FetchMessages devolve o histórico completo de um lead, do mais antigo
// para o mais novo.
func FetchMessages(ctx context.Context, leadID bson.ObjectID) ([]schemas.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, database.MONGO_TIMEOUT)
	defer cancel()

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_MESSAGE_HISTORY)

	filter := bson.D{{Key: "lead_id", Value: leadID}}
	findOptions := options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []schemas.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func GetChatMessages(w http.ResponseWriter, r *http.Request) {
	leadIDStr := r.URL.Query().Get("lead_id")

	leadID, err := bson.ObjectIDFromHex(leadIDStr)
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	messages, err := FetchMessages(r.Context(), leadID)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_MESSAGES_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", messages, 0)
}
