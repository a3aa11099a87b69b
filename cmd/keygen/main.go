package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"
)

var dir = flag.String("dir", "", "Directory where the key will be stored")

func main() {
	flag.Parse()
	if *dir == "" {
		log.Fatal("no directory was given")
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		log.Fatalln(err)
	}

	pemKey := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	pemFile, err := os.Create(fmt.Sprintf("%s/%s", *dir, "private.pem"))
	if err != nil {
		log.Fatalln(err)
	}
	if err = pem.Encode(pemFile, pemKey); err != nil {
		log.Fatalln(err)
	}
	if err = pemFile.Close(); err != nil {
		log.Fatalln(err)
	}
}
