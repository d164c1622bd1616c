package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var (
	s3Session  *session.Session
	uploader   *s3manager.Uploader
	useS3      bool
	archiveDir string
)

// InitStorage initializes the invoice archive, backed by S3 when AWS
// credentials are configured and a local directory otherwise.
func InitStorage() error {
	awsRegion := os.Getenv("AWS_REGION")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if awsRegion != "" && awsAccessKey != "" && awsSecretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(awsRegion),
			Credentials: credentials.NewStaticCredentials(
				awsAccessKey,
				awsSecretKey,
				"", // Token (optional)
			),
		})
		if err != nil {
			return fmt.Errorf("failed to create AWS session: %v", err)
		}

		s3Session = sess
		uploader = s3manager.NewUploader(sess)
		useS3 = true

		fmt.Println("✅ AWS S3 invoice archive initialized successfully")
		return nil
	}

	// Fallback to local storage
	useS3 = false
	archiveDir = os.Getenv("ARCHIVE_DIR")
	if archiveDir == "" {
		archiveDir = "/app/archive"
	}

	if err := os.MkdirAll(filepath.Join(archiveDir, "invoices"), 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %v", err)
	}

	fmt.Println("⚠️  AWS S3 not configured. Archiving invoices to local storage (not recommended for production)")
	return nil
}

// ArchiveDocument stores a generated document under folder/filename and
// returns its location. Archival is best effort; callers log failures and
// move on.
func ArchiveDocument(data []byte, folder, filename, contentType string) (string, error) {
	if useS3 {
		return archiveToS3(data, folder, filename, contentType)
	}
	return archiveLocally(data, folder, filename)
}

// archiveToS3 uploads a document to AWS S3
func archiveToS3(data []byte, folder, filename, contentType string) (string, error) {
	bucketName := os.Getenv("AWS_S3_BUCKET")
	if bucketName == "" {
		return "", fmt.Errorf("S3 bucket name not configured")
	}

	key := fmt.Sprintf("%s/%s", folder, filename)

	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	awsRegion := os.Getenv("AWS_REGION")
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, awsRegion, key), nil
}

// archiveLocally stores a document on the local filesystem
func archiveLocally(data []byte, folder, filename string) (string, error) {
	folderPath := filepath.Join(archiveDir, folder)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create folder directory: %v", err)
	}

	filePath := filepath.Join(folderPath, filename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return filePath, nil
}

// IsUsingS3 returns true if S3 storage is being used
func IsUsingS3() bool {
	return useS3
}
