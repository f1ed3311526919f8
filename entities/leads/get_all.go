package leads

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

// FetchDetails devolve a visão achatada dos leads visíveis: lead + nome do
// responsável, ordenada do mais recentemente conversado para o mais antigo,
// com empate decidido pela data de criação.
func FetchDetails(ctx context.Context) ([]schemas.LeadDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, database.MONGO_TIMEOUT)
	defer cancel()

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEADS)

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "is_visible", Value: true}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.COLLECTION_USERS},
			{Key: "localField", Value: "owner_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "owner_name", Value: bson.D{{Key: "$first", Value: "$owner.name"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "owner", Value: 0}}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "last_message_at", Value: -1},
			{Key: "created_at", Value: -1},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	details := []schemas.LeadDetails{}
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}

	return details, nil
}

func GetAll(w http.ResponseWriter, r *http.Request) {
	details, err := FetchDetails(r.Context())
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_LEADS_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", details, 0)
}
