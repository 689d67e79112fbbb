package main

// sampleNotebook covers markdown with a table, a highlighted code cell with
// stream and rich outputs, and an error with ANSI colours.
const sampleNotebook = `{
  "nbformat": 4,
  "nbformat_minor": 5,
  "metadata": {
    "kernelspec": {"name": "python3", "display_name": "Python 3", "language": "python"},
    "language_info": {"name": "python", "pygments_lexer": "ipython3"}
  },
  "cells": [
    {
      "cell_type": "markdown",
      "metadata": {},
      "source": [
        "# Medal counts\n",
        "\n",
        "| Country | Gold |\n",
        "|---------|------|\n",
        "| Norway  | 16   |\n",
        "| Germany | 12   |\n"
      ]
    },
    {
      "cell_type": "code",
      "execution_count": 1,
      "metadata": {},
      "source": [
        "medals = {'Norway': 16, 'Germany': 12}\n",
        "print(sum(medals.values()))\n",
        "medals"
      ],
      "outputs": [
        {"output_type": "stream", "name": "stdout", "text": ["28\n"]},
        {
          "output_type": "execute_result",
          "execution_count": 1,
          "metadata": {},
          "data": {
            "text/plain": ["{'Norway': 16, 'Germany': 12}"],
            "text/html": ["<table class=\"dataframe\"><tr><th>Country</th><th>Gold</th></tr><tr><td>Norway</td><td>16</td></tr></table>"]
          }
        }
      ]
    },
    {
      "cell_type": "code",
      "execution_count": 2,
      "metadata": {},
      "source": "medals['France']",
      "outputs": [
        {
          "output_type": "error",
          "ename": "KeyError",
          "evalue": "'France'",
          "traceback": ["\u001b[0;31mKeyError\u001b[0m: 'France'"]
        }
      ]
    },
    {
      "cell_type": "code",
      "execution_count": null,
      "metadata": {},
      "source": "# not run yet",
      "outputs": []
    }
  ]
}`
